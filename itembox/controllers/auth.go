package controllers

import (
	"context"
	"fmt"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/types"
	"itembox/itembox/utils/apperrors"
	"itembox/itembox/utils/logging"

	"go.uber.org/zap"
)

type AuthController struct {
	userDAO *dao.UserDAO
	tokens  *security.TokenManager
}

func NewAuthController(userDAO *dao.UserDAO, tokens *security.TokenManager) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		tokens:  tokens,
	}
}

// Register creates the account and returns a token for it.
func (c *AuthController) Register(ctx context.Context, req types.CreateUserRequest) (security.TokenPair, error) {
	existing, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return security.TokenPair{}, err
	}
	if existing != nil {
		return security.TokenPair{}, fmt.Errorf("%w: user with that email already exists", apperrors.ErrConflict)
	}

	user, err := c.userDAO.CreateUser(ctx, req.Email, req.Password, req.Username, req.FullName)
	if err != nil {
		return security.TokenPair{}, err
	}
	logging.AppLogger.Info("User registered", zap.Int("user_id", user.ID))

	return c.tokens.IssueAccess(user.ID, user.Email)
}

// Login checks the credentials and issues an access token. Disabled
// accounts fail the same way as a wrong password.
func (c *AuthController) Login(ctx context.Context, email, password string) (security.TokenPair, error) {
	user, err := c.userDAO.Authenticate(ctx, email, password)
	if err != nil {
		return security.TokenPair{}, err
	}
	if user.Disabled {
		return security.TokenPair{}, apperrors.ErrAuth
	}
	return c.tokens.IssueAccess(user.ID, user.Email)
}
