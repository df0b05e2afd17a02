package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/session"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

type contextKey string

const (
	ContextKeyUser      = contextKey("user")
	ContextKeyRequestID = contextKey("requestID")
)

// SessionMiddleware rejects requests with 401 unless the session is
// authenticated, and puts the profile in the request context.
func SessionMiddleware(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := mgr.State()
			if !st.IsAuthenticated {
				msg := "Authentication required"
				if st.Error != "" {
					msg = st.Error
				}
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, msg, nil)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, st.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the profile SessionMiddleware stored, if any.
func UserFromContext(ctx context.Context) *models.UserProfile {
	u, _ := ctx.Value(ContextKeyUser).(*models.UserProfile)
	return u
}

// RequestIDMiddleware echoes the caller's X-Request-ID, or a fresh one, and
// logs each request at debug level.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(utils.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(utils.RequestIDHeader, id)

		utils.Logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": id,
		}).Debug("Gateway request")

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
