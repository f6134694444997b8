package controllers

import (
	"context"
	"fmt"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/utils/apperrors"
	"strings"
)

type ItemsController struct {
	dao *dao.ItemDAO
}

func NewItemsController(dao *dao.ItemDAO) *ItemsController {
	return &ItemsController{dao: dao}
}

func (c *ItemsController) CreateItem(ctx context.Context, userID int, text string) (*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: item_text is required", apperrors.ErrValidation)
	}
	return c.dao.CreateItem(ctx, userID, text)
}

func (c *ItemsController) GetItemsByUser(ctx context.Context, userID int) ([]models.Item, error) {
	return c.dao.ListItems(ctx, userID)
}
