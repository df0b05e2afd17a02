package routes

const (
	Health   = "/health"
	Listings = "/api/v1/listings"

	Session       = "/api/v1/session"
	SessionLogin  = "/api/v1/session/login"
	SessionLogout = "/api/v1/session/logout"

	Dashboard = "/api/v1/dashboard"

	PaymentOptions = "/api/v1/payments/options"
	PaymentMpesa   = "/api/v1/payments/mpesa"
)
