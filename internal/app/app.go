package app

import (
	"fmt"
	"time"

	"github.com/Simatwa/house-rental-management-system/internal/apiclient"
	"github.com/Simatwa/house-rental-management-system/internal/config"
	"github.com/Simatwa/house-rental-management-system/internal/currency"
	"github.com/Simatwa/house-rental-management-system/internal/services"
	"github.com/Simatwa/house-rental-management-system/internal/session"
	"github.com/Simatwa/house-rental-management-system/internal/tokenstore"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const initialBackoff = 500 * time.Millisecond

type App struct {
	Config    *config.Config
	Tokens    tokenstore.Store
	API       *apiclient.Client
	Session   *session.Manager
	Currency  *currency.Formatter
	Listings  *services.ListingService
	Dashboard *services.DashboardService
	Payments  *services.PaymentService
}

// NewApp wires the API client, session and services. A nil store means
// the token file named by the config; nav may be nil.
func NewApp(cfg *config.Config, store tokenstore.Store, nav session.Navigator) (*App, error) {
	if store == nil {
		store = tokenstore.NewFileStore(cfg.TokenFile)
	}

	client, err := apiclient.NewClient(cfg.APIURL, store, cfg.HTTPTimeout, cfg.MaxRetries, initialBackoff)
	if err != nil {
		return nil, fmt.Errorf("unable to create API client: %w", err)
	}
	client.UserAgent = cfg.AppName

	formatter := currency.NewFormatter(cfg.CurrencySymbol)

	app := &App{
		Config:    cfg,
		Tokens:    store,
		API:       client,
		Session:   session.NewManager(client, store, nav),
		Currency:  formatter,
		Listings:  services.NewListingService(cfg, client),
		Dashboard: services.NewDashboardService(client, formatter),
		Payments:  services.NewPaymentService(client),
	}
	utils.Logger.Debugf("%s wired against %s", cfg.AppName, cfg.APIURL)
	return app, nil
}

func (a *App) Close() {
	if a.API != nil {
		a.API.HTTPClient.CloseIdleConnections()
		utils.Logger.Debug("API client connections closed.")
	}
}
