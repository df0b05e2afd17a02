package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Simatwa/house-rental-management-system/internal/models"
)

type stubUtilities struct {
	utilities []models.AppUtility
	err       error
	asked     models.UtilityName
}

func (s *stubUtilities) AppUtilities(_ context.Context, name models.UtilityName) ([]models.AppUtility, error) {
	s.asked = name
	return s.utilities, s.err
}

func TestFormat(t *testing.T) {
	f := NewFormatter("")
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Ksh 0"},
		{1500, "Ksh 1,500"},
		{1234.5, "Ksh 1,234.5"},
		{1000000, "Ksh 1,000,000"},
		{-250, "Ksh -250"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, f.Format(tc.amount))
	}
}

func TestLoadAdoptsPublishedSymbol(t *testing.T) {
	f := NewFormatter("")
	src := &stubUtilities{utilities: []models.AppUtility{{Name: models.UtilityCurrency, Value: "USD"}}}

	f.Load(context.Background(), src)
	assert.Equal(t, models.UtilityCurrency, src.asked)
	assert.Equal(t, "USD 1,500", f.Format(1500))
}

func TestLoadKeepsDefaultOnFailure(t *testing.T) {
	f := NewFormatter("")
	f.Load(context.Background(), &stubUtilities{err: errors.New("offline")})
	assert.Equal(t, "Ksh", f.Symbol())

	f.Load(context.Background(), &stubUtilities{})
	assert.Equal(t, "Ksh", f.Symbol())

	f.Load(context.Background(), &stubUtilities{utilities: []models.AppUtility{{Value: "  "}}})
	assert.Equal(t, "Ksh", f.Symbol())
}
