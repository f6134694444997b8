package controllers

import (
	"context"
	"errors"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/sources/storage"
	"itembox/itembox/types"
	"itembox/itembox/utils/apperrors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
)

type fixture struct {
	users  *dao.UserDAO
	items  *dao.ItemDAO
	tokens *security.TokenManager
	root   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := psql.Open(context.Background(), sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	tokens, err := security.NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	return fixture{
		users:  dao.NewUserDAO(db.DB, security.NewHasher(bcrypt.MinCost)),
		items:  dao.NewItemDAO(db.DB),
		tokens: tokens,
		root:   t.TempDir(),
	}
}

func TestAuthController_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctrl := NewAuthController(f.users, f.tokens)
	ctx := context.Background()

	pair, err := ctrl.Register(ctx, types.CreateUserRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	claims, err := f.tokens.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = ctrl.Register(ctx, types.CreateUserRequest{Email: "alice@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = ctrl.Register(ctx, types.CreateUserRequest{Email: "nope", Password: "pw"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidEmail))

	login, err := ctrl.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = ctrl.Login(ctx, "alice@example.com", "bad")
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestAuthController_LoginDisabled(t *testing.T) {
	f := newFixture(t)
	ctrl := NewAuthController(f.users, f.tokens)
	ctx := context.Background()

	u, err := f.users.CreateUser(ctx, "bob@example.com", "pw", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.users.SetDisabled(ctx, u.ID, true))

	_, err = ctrl.Login(ctx, "bob@example.com", "pw")
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
}

func TestItemsController(t *testing.T) {
	f := newFixture(t)
	ctrl := NewItemsController(f.items)
	ctx := context.Background()
	u, err := f.users.CreateUser(ctx, "carol@example.com", "pw", "", nil)
	require.NoError(t, err)

	_, err = ctrl.CreateItem(ctx, u.ID, "   ")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	item, err := ctrl.CreateItem(ctx, u.ID, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, u.ID, item.UserID)

	list, err := ctrl.GetItemsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "buy milk", list[0].ItemText)
}

func TestImagesController_Upload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := NewImagesController(storage.NewLocalStore(f.root, t.TempDir()), f.users, f.items)
	u, err := f.users.CreateUser(ctx, "dave@example.com", "pw", "", nil)
	require.NoError(t, err)
	item, err := f.items.CreateItem(ctx, u.ID, "album")
	require.NoError(t, err)

	name, err := ctrl.Upload(ctx, u, "cat.png", strings.NewReader("meow"), &item.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat.png", name)

	data, err := os.ReadFile(filepath.Join(f.root, "dave@example.com", "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))

	list, err := f.items.ListItems(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat.png"}, list[0].ImageNames)

	missing := 999
	_, err = ctrl.Upload(ctx, u, "dog.png", strings.NewReader("woof"), &missing)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = os.Stat(filepath.Join(f.root, "dave@example.com", "dog.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestImagesController_UploadToOtherUsersItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := NewImagesController(storage.NewLocalStore(f.root, t.TempDir()), f.users, f.items)
	erin, err := f.users.CreateUser(ctx, "erin@example.com", "pw", "", nil)
	require.NoError(t, err)
	frank, err := f.users.CreateUser(ctx, "frank@example.com", "pw", "", nil)
	require.NoError(t, err)
	item, err := f.items.CreateItem(ctx, erin.ID, "private")
	require.NoError(t, err)

	_, err = ctrl.Upload(ctx, frank, "sneaky.png", strings.NewReader("x"), &item.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = os.Stat(filepath.Join(f.root, "frank@example.com"))
	assert.True(t, os.IsNotExist(err))

	list, err := f.items.ListItems(ctx, erin.ID)
	require.NoError(t, err)
	assert.Empty(t, list[0].ImageNames)
}
