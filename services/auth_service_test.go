package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/config"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

func TestMain(m *testing.M) {
	config.Set(config.AppConfig{JWTSecret: "test-secret"})
	m.Run()
}

type mockUserStore struct {
	byID    map[uint]*models.User
	byEmail map[string]*models.User
	nextID  uint

	// Error injection
	createErr error
	findErr   error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]*models.User),
		nextID:  1,
	}
}

func (m *mockUserStore) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return stores.ErrDuplicate
	}
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.byID[user.ID] = &cp
	m.byEmail[user.Email] = &cp
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) error {
	cp := *user
	m.byID[user.ID] = &cp
	m.byEmail[user.Email] = &cp
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	svc := NewAuthService(newMockUserStore())
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.Equal(t, "Alice", reg.User.Name)
	assert.NotZero(t, reg.User.ID)

	login, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	// The token's claims resolve to the same user id.
	claims, err := utils.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMockUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "different", "Other Name")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.AlreadyExists))
	assert.Equal(t, "User already exists", apperror.From(err).Message)
}

func TestRegisterDuplicateKeyFromStore(t *testing.T) {
	// Two concurrent registrations can both pass the pre-check; the unique
	// index failure must still come back as AlreadyExists.
	store := newMockUserStore()
	svc := NewAuthService(store)
	store.createErr = stores.ErrDuplicate

	_, err := svc.Register(context.Background(), "a@x.com", "secret1", "Alice")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.AlreadyExists))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAuthService(newMockUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong")
	require.Error(t, wrongPassword)
	_, unknownEmail := svc.Login(ctx, "b@x.com", "secret1")
	require.Error(t, unknownEmail)

	wp := apperror.From(wrongPassword)
	ue := apperror.From(unknownEmail)
	assert.Equal(t, apperror.InvalidCredentials, wp.Kind)
	assert.Equal(t, wp.Kind, ue.Kind)
	assert.Equal(t, wp.Message, ue.Message)
	assert.Equal(t, "Invalid credentials", wp.Message)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newMockUserStore()
	svc := NewAuthService(store)

	reg, err := svc.Register(context.Background(), "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	stored := store.byID[reg.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "secret1"))
}
