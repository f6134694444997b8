package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/utils/apperrors"
	"itembox/itembox/utils/logging"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const UserKey contextKey = "user"

// UserLookup resolves a token subject to a stored user; nil, nil means absent.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// AuthMiddleware verifies the bearer token and loads the live user record on
// every request. Unknown and disabled users are rejected like a bad token.
func AuthMiddleware(tokens *security.TokenManager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, tokens, users)
			if errors.Is(err, apperrors.ErrAuth) {
				unauthorized(w)
				return
			}
			if err != nil {
				logging.ErrorLogger.Error("user lookup failed", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, tokens *security.TokenManager, users UserLookup) (*models.User, error) {
	auth := r.Header.Get("Authorization")
	parts := strings.Fields(auth)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.ErrAuth
	}
	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	user, err := users.GetUserByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, apperrors.ErrAuth
	}
	return user, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": apperrors.ErrAuth.Error()})
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}
