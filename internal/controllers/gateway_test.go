package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/config"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/routes"
	"github.com/Simatwa/house-rental-management-system/internal/tokenstore"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// fakeRentalAPI serves just enough of /api/v1 for the gateway routes.
func fakeRentalAPI(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
	authed := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer tok-bob"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/business/about", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `{"name":"Rental MS","short_name":"RMS"}`)
	})
	mux.HandleFunc("/api/v1/business/houses", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"id":1,"name":"Sunrise Apartments"},{"id":2,"name":"Oak Villas"}]`)
	})
	mux.HandleFunc("/api/v1/business/unit-goup/1", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"id":10,"name":"Studio A","abbreviated_name":"STA"}]`)
	})
	mux.HandleFunc("/api/v1/business/unit-goup/2", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"id":20,"name":"Penthouse","abbreviated_name":"PNT"}]`)
	})
	mux.HandleFunc("/api/v1/account/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("username") == "bob" && r.PostForm.Get("password") == "correct" {
			reply(w, 200, `{"access_token":"tok-bob","token_type":"bearer"}`)
			return
		}
		reply(w, 401, `{"detail":"Incorrect username or password"}`)
	})
	mux.HandleFunc("/api/v1/account/profile", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			reply(w, 401, `{"detail":"Not authenticated"}`)
			return
		}
		reply(w, 200, `{"username":"bob","first_name":"Bob","account_balance":2500,"date_joined":"2024-01-15T08:00:00"}`)
	})
	mux.HandleFunc("/api/v1/core/unit", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `{"id":3,"name":"A-3","abbreviated_name":"A3","occupied_status":"Occupied","unit_group":{"id":10,"name":"Studio A"}}`)
	})
	for _, kind := range []string{"personal", "group", "community"} {
		mux.HandleFunc("/api/v1/core/"+kind+"/messages", func(w http.ResponseWriter, r *http.Request) {
			reply(w, 200, `[{"id":1,"subject":"Rent","is_read":false},{"id":2,"subject":"Water","is_read":true}]`)
		})
	}
	mux.HandleFunc("/api/v1/core/concerns", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"id":4,"about":"Leaking tap","status":"Open"}]`)
	})
	mux.HandleFunc("/api/v1/core/feedback", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 404, `{"detail":"Feedback not found"}`)
	})
	mux.HandleFunc("/api/v1/account/transactions", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[{"type":"Deposit","amount":500,"means":"M-PESA","reference":"QWE123"}]`)
	})
	mux.HandleFunc("/api/v1/account/mpesa-payment-account-details", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `{"name":"M-PESA","paybill_number":"247247","account_number":"RENT"}`)
	})
	mux.HandleFunc("/api/v1/account/other-payment-account-details", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, `[]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, apiURL string) *app.App {
	t.Helper()
	cfg := &config.Config{
		AppName:          "tenant-portal-test",
		APIURL:           apiURL,
		HTTPTimeout:      2 * time.Second,
		FetchConcurrency: 2,
		CurrencySymbol:   utils.DefaultCurrencySymbol,
	}
	a, err := app.NewApp(cfg, tokenstore.NewMemoryStore(), nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NoError(t, a.Session.Bootstrap(context.Background()))
	return a
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv := fakeRentalAPI(t)
	router := NewRouter(newTestApp(t, srv.URL+"/api/v1"))

	rr := do(t, router, http.MethodGet, routes.Health, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(utils.RequestIDHeader))
	assert.Equal(t, "OK", decode[dtos.HealthCheckResponse](t, rr).Status)
}

func TestHealthUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	router := NewRouter(newTestApp(t, url+"/api/v1"))

	rr := do(t, router, http.MethodGet, routes.Health, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, utils.ErrCodeUpstream, decode[utils.ErrorResponse](t, rr).Code)
}

func TestListingsSearch(t *testing.T) {
	srv := fakeRentalAPI(t)
	router := NewRouter(newTestApp(t, srv.URL+"/api/v1"))

	rr := do(t, router, http.MethodGet, routes.Listings+"?q=studio", "")
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[dtos.ListingsResponse](t, rr)
	assert.Equal(t, "studio", res.Term)
	assert.Empty(t, res.Houses)
	require.Contains(t, res.UnitGroups, 1)
	assert.Equal(t, "STA", res.UnitGroups[1][0].AbbreviatedName)

	rr = do(t, router, http.MethodGet, routes.Listings+"?q=oak", "")
	res = decode[dtos.ListingsResponse](t, rr)
	require.Len(t, res.Houses, 1)
	assert.Equal(t, "Oak Villas", res.Houses[0].Name)
	assert.Empty(t, res.UnitGroups)
}

func TestSessionLifecycle(t *testing.T) {
	srv := fakeRentalAPI(t)
	a := newTestApp(t, srv.URL+"/api/v1")
	router := NewRouter(a)

	st := decode[dtos.SessionResponse](t, do(t, router, http.MethodGet, routes.Session, ""))
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Nil(t, st.Error)

	rr := do(t, router, http.MethodGet, routes.Dashboard, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, router, http.MethodPost, routes.SessionLogin, `{"username":"bob","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, utils.ErrCodeInvalidCredentials, decode[utils.ErrorResponse](t, rr).Code)
	st = decode[dtos.SessionResponse](t, do(t, router, http.MethodGet, routes.Session, ""))
	require.NotNil(t, st.Error)
	assert.Equal(t, "Invalid username or password", *st.Error)

	rr = do(t, router, http.MethodPost, routes.SessionLogin, `{"username":"bob","password":"correct"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	st = decode[dtos.SessionResponse](t, rr)
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "bob", st.User.Username)
	assert.Nil(t, st.Error)

	rr = do(t, router, http.MethodGet, routes.Dashboard, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	sum := decode[dtos.DashboardSummaryResponse](t, rr)
	assert.Equal(t, 3, sum.TotalUnread)
	assert.Equal(t, "Ksh 2,500", sum.FormattedBalance)
	assert.Nil(t, sum.Feedback)
	require.NotNil(t, sum.LatestConcern)
	assert.Equal(t, 4, sum.LatestConcern.ID)

	rr = do(t, router, http.MethodPost, routes.SessionLogout, "")
	require.Equal(t, http.StatusOK, rr.Code)
	out := decode[dtos.LogoutResponse](t, rr)
	assert.Equal(t, "/", out.Redirect)
	assert.False(t, out.IsAuthenticated)
	assert.Nil(t, out.User)

	_, ok, _ := a.Tokens.Get()
	assert.False(t, ok)
}

func TestLoginRejectsBadPayloads(t *testing.T) {
	srv := fakeRentalAPI(t)
	router := NewRouter(newTestApp(t, srv.URL+"/api/v1"))

	rr := do(t, router, http.MethodPost, routes.SessionLogin, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decode[utils.ErrorResponse](t, rr).Code)

	rr = do(t, router, http.MethodPost, routes.SessionLogin, `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode[utils.ErrorResponse](t, rr)
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	assert.Equal(t, "Password is required", body.Message)
}

func TestPayments(t *testing.T) {
	srv := fakeRentalAPI(t)
	a := newTestApp(t, srv.URL+"/api/v1")
	router := NewRouter(a)
	require.NoError(t, a.Session.Login(context.Background(), "bob", "correct"))

	rr := do(t, router, http.MethodGet, routes.PaymentOptions, "")
	require.Equal(t, http.StatusOK, rr.Code)
	opts := decode[dtos.PaymentOptionsResponse](t, rr)
	assert.Equal(t, "247247", opts.Mpesa.PaybillNumber)

	rr = do(t, router, http.MethodPost, routes.PaymentMpesa, `{"phone_number":"0712","amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, utils.ErrCodeValidation, decode[utils.ErrorResponse](t, rr).Code)
}
