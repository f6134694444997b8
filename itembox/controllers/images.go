package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/sources/storage"
	"itembox/itembox/utils/apperrors"
	"itembox/itembox/utils/logging"

	"go.uber.org/zap"
)

type ImagesController struct {
	store   storage.FileStore
	userDAO *dao.UserDAO
	itemDAO *dao.ItemDAO
}

func NewImagesController(store storage.FileStore, userDAO *dao.UserDAO, itemDAO *dao.ItemDAO) *ImagesController {
	return &ImagesController{store: store, userDAO: userDAO, itemDAO: itemDAO}
}

// Upload stores the file under the user's email and, when itemID is set,
// records the filename on that item. The owner and the item are resolved
// before anything is written.
func (c *ImagesController) Upload(ctx context.Context, user *models.User, filename string, r io.Reader, itemID *int) (string, error) {
	owner, err := c.userDAO.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
	}
	if itemID != nil {
		if _, err := c.itemDAO.GetItem(ctx, owner.ID, *itemID); err != nil {
			return "", err
		}
	}

	name, err := c.store.Store(ctx, owner.Email, filename, r)
	switch {
	case errors.Is(err, storage.ErrSameFile):
		logging.AppLogger.Warn("Upload source and destination are the same file",
			zap.Int("user_id", owner.ID),
			zap.String("filename", name),
		)
	case err != nil:
		logging.ErrorLogger.Error("Upload failed",
			zap.Int("user_id", owner.ID),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return "", err
	}

	if itemID != nil {
		if _, err := c.itemDAO.AddImage(ctx, owner.ID, *itemID, name); err != nil {
			return "", err
		}
	}
	return name, nil
}
