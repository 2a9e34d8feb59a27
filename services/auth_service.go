package services

import (
	"context"
	"errors"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

// AuthService orchestrates registration and login: duplicate checks, bcrypt
// hashing, and identity token issuance.
type AuthService struct {
	users stores.UserStore
}

// NewAuthService creates an AuthService backed by the given user store.
func NewAuthService(users stores.UserStore) *AuthService {
	return &AuthService{users: users}
}

// AuthResult is the response of both register and login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// errInvalidCredentials is shared by every login failure branch so callers
// cannot distinguish an unknown email from a wrong password.
func errInvalidCredentials() *apperror.Error {
	return apperror.New(apperror.InvalidCredentials, "Invalid credentials")
}

// Register creates an account with a hashed password and issues a token.
// The pre-check gives a friendly error for known duplicates; the unique
// index on users.email is the guard that holds under concurrency, so a
// duplicate-key failure from the store maps to the same error.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.AlreadyExists, "User already exists")
	} else if !errors.Is(err, stores.ErrNotFound) {
		return nil, apperror.Wrap(apperror.Internal, "failed to look up user", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to hash password", err)
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, apperror.New(apperror.AlreadyExists, "User already exists")
		}
		return nil, apperror.Wrap(apperror.Internal, "failed to create user", err)
	}

	return s.issue(&user)
}

// Login verifies credentials and issues a token. Both failure branches are
// deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, apperror.Wrap(apperror.Internal, "failed to look up user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, errInvalidCredentials()
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to generate token", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
