package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/middleware"
	"github.com/Simatwa/house-rental-management-system/internal/routes"
)

// NewRouter registers every gateway route against the app's services.
func NewRouter(application *app.App) *mux.Router {
	healthController := NewHealthController(application)
	listingsController := NewListingsController(application.Listings)
	sessionController := NewSessionController(application.Session)
	dashboardController := NewDashboardController(application.Dashboard)
	paymentsController := NewPaymentsController(application.Payments)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)

	// Public Routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Listings, listingsController.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Session, sessionController.GetSessionHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SessionLogin, sessionController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.SessionLogout, sessionController.LogoutHandler).Methods(http.MethodPost)

	// Routes that need a logged-in tenant
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.SessionMiddleware(application.Session))
	secured.HandleFunc(routes.Dashboard, dashboardController.GetDashboardHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentOptions, paymentsController.GetOptionsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentMpesa, paymentsController.MpesaTopUpHandler).Methods(http.MethodPost)

	return router
}
