package routes

import (
	"itembox/itembox/middlewares"
	"itembox/itembox/utils/apperrors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UserRoutes expects AuthMiddleware on r.
func UserRoutes(r chi.Router) {
	r.Get("/users/me", handleJSON(func(r *http.Request) (any, int, error) {
		user, ok := middlewares.CurrentUser(r.Context())
		if !ok {
			return nil, http.StatusUnauthorized, apperrors.ErrAuth
		}
		return user, http.StatusOK, nil
	}))
}
