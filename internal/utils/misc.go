package utils

// Optional fields in PATCH bodies and list filters are pointers, so that a
// field left out of a request differs from one set to its zero value.

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// ValOr dereferences p, falling back when p is nil or points at the zero
// value. Profile fields the API leaves null or empty render the same way.
func ValOr[T comparable](p *T, fallback T) T {
	var zero T
	if p == nil || *p == zero {
		return fallback
	}
	return *p
}
