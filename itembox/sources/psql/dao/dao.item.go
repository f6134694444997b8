package dao

import (
	"context"
	"errors"
	"fmt"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/utils/apperrors"
	"itembox/itembox/utils/logging"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemDAO struct {
	DB *gorm.DB
}

func NewItemDAO(db *gorm.DB) *ItemDAO {
	return &ItemDAO{DB: db}
}

func (dao *ItemDAO) CreateItem(ctx context.Context, userID int, text string) (*models.Item, error) {
	defer logging.LogDuration(ctx, "ItemDAO.CreateItem")()

	item := &models.Item{
		UserID:     userID,
		ItemText:   text,
		ImageNames: []string{},
	}
	err := dao.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the user's items in insertion order.
func (dao *ItemDAO) ListItems(ctx context.Context, userID int) ([]models.Item, error) {
	items := []models.Item{}
	err := dao.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns an item owned by userID. Items of other users are reported
// as not found.
func (dao *ItemDAO) GetItem(ctx context.Context, userID, itemID int) (*models.Item, error) {
	var item models.Item
	err := dao.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: item %d", apperrors.ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddImage appends filename to an item owned by userID. Items of other users
// are reported as not found.
func (dao *ItemDAO) AddImage(ctx context.Context, userID, itemID int, filename string) (*models.Item, error) {
	defer logging.LogDuration(ctx, "ItemDAO.AddImage")()

	var item models.Item
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d", apperrors.ErrNotFound, itemID)
		}
		if err != nil {
			return err
		}
		item.ImageNames = append(item.ImageNames, filename)
		return tx.Model(&item).Select("ImageNames").Updates(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
