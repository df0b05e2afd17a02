// Package currency renders money amounts with the business's published
// currency symbol.
package currency

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// UtilitySource looks up published app utilities.
// apiclient.Client satisfies it.
type UtilitySource interface {
	AppUtilities(ctx context.Context, name models.UtilityName) ([]models.AppUtility, error)
}

// Formatter prefixes amounts with a currency symbol and groups digits the
// way an en-US locale does ("Ksh 1,500", "Ksh 1,234.5").
type Formatter struct {
	mu      sync.RWMutex
	symbol  string
	printer *message.Printer
}

func NewFormatter(symbol string) *Formatter {
	f := &Formatter{printer: message.NewPrinter(language.AmericanEnglish)}
	f.SetSymbol(symbol)
	return f
}

// SetSymbol replaces the symbol; a blank symbol restores the default.
func (f *Formatter) SetSymbol(symbol string) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = utils.DefaultCurrencySymbol
	}
	f.mu.Lock()
	f.symbol = symbol
	f.mu.Unlock()
}

func (f *Formatter) Symbol() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.symbol
}

// Format renders amount with at most three fraction digits.
func (f *Formatter) Format(amount float64) string {
	return f.Symbol() + " " + f.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// Load fetches the Currency utility and adopts its value. A failed or
// empty lookup keeps the current symbol.
func (f *Formatter) Load(ctx context.Context, src UtilitySource) {
	utilities, err := src.AppUtilities(ctx, models.UtilityCurrency)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error fetching currency; keeping default symbol")
		return
	}
	if len(utilities) == 0 {
		return
	}
	f.SetSymbol(utilities[0].Value)
}
