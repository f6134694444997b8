package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"itembox/itembox/controllers"
	"itembox/itembox/types"
	"itembox/itembox/utils/apperrors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r chi.Router, ctrl *controllers.AuthController) {
	r.Post("/users", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
		}
		pair, err := ctrl.Register(r.Context(), req)
		if errors.Is(err, apperrors.ErrInvalidEmail) {
			return nil, http.StatusNotFound, errors.New("please enter a valid email")
		}
		if err != nil {
			return nil, statusFor(err), err
		}
		return pair, http.StatusOK, nil
	}))

	// OAuth2 password form: the username field carries the email.
	r.Post("/token", handleJSON(func(r *http.Request) (any, int, error) {
		if err := r.ParseForm(); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid form: %w", err)
		}
		pair, err := ctrl.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
		if err != nil {
			return nil, statusFor(err), err
		}
		return pair, http.StatusOK, nil
	}))
}
