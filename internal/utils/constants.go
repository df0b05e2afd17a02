package utils

const (
	OrganizationName = "Rental MS"

	// Key under which the bearer token is persisted.
	AccessTokenKey = "access_token"

	DefaultCurrencySymbol = "Ksh"

	// Where Logout sends the user.
	RootPath = "/"

	RequestIDHeader = "X-Request-ID"
)
