package dao

import (
	"context"
	"errors"
	"fmt"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/utils/apperrors"
	"itembox/itembox/utils/logging"
	"strings"

	"gorm.io/gorm"
)

type UserDAO struct {
	DB     *gorm.DB
	hasher *security.Hasher
}

func NewUserDAO(db *gorm.DB, hasher *security.Hasher) *UserDAO {
	return &UserDAO{DB: db, hasher: hasher}
}

// CreateUser validates the email, hashes the password and inserts the row.
// A duplicate email is reported as apperrors.ErrConflict.
func (dao *UserDAO) CreateUser(ctx context.Context, email, password, username string, fullName *string) (*models.User, error) {
	defer logging.LogDuration(ctx, "UserDAO.CreateUser")()

	normalized, err := security.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is empty", apperrors.ErrValidation)
	}
	digest, err := dao.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if username == "" {
		username = normalized[:strings.Index(normalized, "@")]
	}

	user := models.User{
		Email:          normalized,
		HashedPassword: digest,
		Username:       username,
		FullName:       fullName,
	}
	err = dao.DB.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrConflict, normalized)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns nil, nil when no user matches, including when the
// address is not well formed.
func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized, err := security.NormalizeEmail(email)
	if err != nil {
		return nil, nil
	}
	var user models.User
	err = dao.DB.WithContext(ctx).Where("email = ?", normalized).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the user when the password matches. Unknown email and
// wrong password are both apperrors.ErrAuth.
func (dao *UserDAO) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	defer logging.LogDuration(ctx, "UserDAO.Authenticate")()

	user, err := dao.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !dao.hasher.Verify(password, user.HashedPassword) {
		return nil, apperrors.ErrAuth
	}
	return user, nil
}

func (dao *UserDAO) SetDisabled(ctx context.Context, id int, disabled bool) error {
	res := dao.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("disabled", disabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func (dao *UserDAO) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := dao.DB.WithContext(ctx).Order("id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
