package routes

import (
	"fmt"
	"itembox/itembox/controllers"
	"itembox/itembox/middlewares"
	"itembox/itembox/types"
	"itembox/itembox/utils/apperrors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxMemory = 32 << 20

// ImagesRoutes expects AuthMiddleware on r.
func ImagesRoutes(r chi.Router, ctrl *controllers.ImagesController) {
	r.Post("/images", handleJSON(func(r *http.Request) (any, int, error) {
		user, ok := middlewares.CurrentUser(r.Context())
		if !ok {
			return nil, http.StatusUnauthorized, apperrors.ErrAuth
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("upload_file")
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("upload_file: %w", err)
		}
		defer file.Close()

		var itemID *int
		if v := r.FormValue("item_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, http.StatusBadRequest, fmt.Errorf("item_id: %w", err)
			}
			itemID = &id
		}

		name, err := ctrl.Upload(r.Context(), user, header.Filename, file, itemID)
		if err != nil {
			return nil, statusFor(err), err
		}
		return types.UploadResponse{Filename: &name}, http.StatusOK, nil
	}))
}
