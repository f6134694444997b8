package routes

import (
	"encoding/json"
	"fmt"
	"itembox/itembox/controllers"
	"itembox/itembox/middlewares"
	"itembox/itembox/types"
	"itembox/itembox/utils/apperrors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ItemsRoutes expects AuthMiddleware on r.
func ItemsRoutes(r chi.Router, ctrl *controllers.ItemsController) {
	r.Post("/userItems", handleJSON(func(r *http.Request) (any, int, error) {
		user, ok := middlewares.CurrentUser(r.Context())
		if !ok {
			return nil, http.StatusUnauthorized, apperrors.ErrAuth
		}
		var req types.CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
		}
		item, err := ctrl.CreateItem(r.Context(), user.ID, req.ItemText)
		if err != nil {
			return nil, statusFor(err), err
		}
		return item, http.StatusOK, nil
	}))

	r.Get("/items", handleJSON(func(r *http.Request) (any, int, error) {
		user, ok := middlewares.CurrentUser(r.Context())
		if !ok {
			return nil, http.StatusUnauthorized, apperrors.ErrAuth
		}
		items, err := ctrl.GetItemsByUser(r.Context(), user.ID)
		if err != nil {
			return nil, statusFor(err), err
		}
		return items, http.StatusOK, nil
	}))
}
