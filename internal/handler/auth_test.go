package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/shelter-api/internal/auth"
	"github.com/pawhaven/shelter-api/internal/config"
	"github.com/pawhaven/shelter-api/internal/model"
	"github.com/pawhaven/shelter-api/internal/repository"
	"github.com/pawhaven/shelter-api/internal/utils"
)

type stubUsers struct {
	createErr   error
	createdRole string

	byEmail map[string]model.User
	byID    map[uint64]model.User

	updated   *repository.ProfileUpdate
	updateErr error
}

func (s *stubUsers) Create(_ context.Context, _, _, _, role string, _ int) (uint64, error) {
	s.createdRole = role
	if s.createErr != nil {
		return 0, s.createErr
	}
	return 1, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, _ uint64, upd repository.ProfileUpdate) error {
	s.updated = &upd
	return s.updateErr
}

func testCfg() config.Config {
	// bcrypt cost 4 keeps the suite fast; production uses the configured
	// default.
	return config.Config{JWTSecret: "test-secret", TokenTTLHours: 1, BcryptCost: 4}
}

func seededUser(t *testing.T, id uint64, email, password, role string) model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	return model.User{ID: id, FullName: "Jamie Rivera", Email: email, PasswordHash: hash, Role: role}
}

func TestLogin_Success(t *testing.T) {
	store := &stubUsers{byEmail: map[string]model.User{
		"jamie@example.com": seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
	}}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"jamie@example.com","password":"secret123"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp.User.ID)
	assert.Equal(t, "jamie@example.com", resp.User.Email)

	// The returned token must verify against the same secret and carry
	// the caller's identity.
	id, err := auth.VerifyToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id.UserID)
	assert.Equal(t, auth.RoleUser, id.Role)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := NewAuthHandler(testCfg(), &stubUsers{byEmail: map[string]model.User{}})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"whatever"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLogin_WrongPassword(t *testing.T) {
	store := &stubUsers{byEmail: map[string]model.User{
		"jamie@example.com": seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
	}}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"jamie@example.com","password":"not-the-password"}`)
	require.NoError(t, h.Login(c))

	// Same response as unknown email: the endpoint must not reveal which
	// accounts exist.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLogin_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(testCfg(), &stubUsers{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"not-an-email","password":""}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestRegister_Success(t *testing.T) {
	store := &stubUsers{}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"fullName":"Jamie Rivera","email":"jamie@example.com","password":"secret123"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, auth.RoleUser, store.createdRole, "role must default to user")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := &stubUsers{createErr: repository.ErrEmailExists}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"fullName":"Jamie Rivera","email":"jamie@example.com","password":"secret123"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestRegister_ShortPassword(t *testing.T) {
	store := &stubUsers{}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"fullName":"Jamie Rivera","email":"jamie@example.com","password":"abc"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.createdRole, "store must not be called on validation failure")
}

func TestProfile_Success(t *testing.T) {
	store := &stubUsers{byID: map[uint64]model.User{
		7: seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
	}}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/profile", "")
	withIdentity(c, 7, auth.RoleUser)
	require.NoError(t, h.Profile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jamie@example.com"`)
}

func TestProfile_UserGone(t *testing.T) {
	h := NewAuthHandler(testCfg(), &stubUsers{byID: map[uint64]model.User{}})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/profile", "")
	withIdentity(c, 99, auth.RoleUser)
	require.NoError(t, h.Profile(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile_NoIdentity(t *testing.T) {
	h := NewAuthHandler(testCfg(), &stubUsers{})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/profile", "")
	require.NoError(t, h.Profile(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile_WrongCurrentPassword(t *testing.T) {
	store := &stubUsers{byID: map[uint64]model.User{
		7: seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
	}}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPut, "/api/auth/profile",
		`{"currentPassword":"wrong","fullName":"New Name"}`)
	withIdentity(c, 7, auth.RoleUser)
	require.NoError(t, h.UpdateProfile(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect current password")
	assert.Nil(t, store.updated, "nothing may be written before the password check")
}

func TestUpdateProfile_Success(t *testing.T) {
	store := &stubUsers{byID: map[uint64]model.User{
		7: seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
	}}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPut, "/api/auth/profile",
		`{"currentPassword":"secret123","fullName":"New Name","newPassword":"fresh-secret","preferences":{"notifications":true,"newsletter":false}}`)
	withIdentity(c, 7, auth.RoleUser)
	require.NoError(t, h.UpdateProfile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.updated)
	require.NotNil(t, store.updated.FullName)
	assert.Equal(t, "New Name", *store.updated.FullName)
	assert.Nil(t, store.updated.Email)

	require.NotNil(t, store.updated.PasswordHash)
	assert.True(t, utils.VerifyPassword(*store.updated.PasswordHash, "fresh-secret"),
		"stored hash must match the new password")

	require.NotNil(t, store.updated.Preferences)
	assert.JSONEq(t, `{"notifications":true,"newsletter":false}`, *store.updated.Preferences)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	store := &stubUsers{
		byID: map[uint64]model.User{
			7: seededUser(t, 7, "jamie@example.com", "secret123", auth.RoleUser),
		},
		updateErr: repository.ErrEmailExists,
	}
	h := NewAuthHandler(testCfg(), store)

	c, rec := newTestContext(t, http.MethodPut, "/api/auth/profile",
		`{"currentPassword":"secret123","email":"taken@example.com"}`)
	withIdentity(c, 7, auth.RoleUser)
	require.NoError(t, h.UpdateProfile(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}
