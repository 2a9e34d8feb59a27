package services

import (
	"context"
	"errors"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

// UserService serves the public user surface: listings, lookups, and the
// token-less account creation procedure.
type UserService struct {
	users stores.UserStore
}

func NewUserService(users stores.UserStore) *UserService {
	return &UserService{users: users}
}

// List returns the public projection of every user.
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to list users", err)
	}
	out := make([]models.PublicUser, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return out, nil
}

// Get returns the public projection of one user.
func (s *UserService) Get(ctx context.Context, id uint) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperror.New(apperror.NotFound, "User not found")
		}
		return nil, apperror.Wrap(apperror.Internal, "failed to get user", err)
	}
	pub := user.Public()
	return &pub, nil
}

// Create registers an account without issuing a token, mirroring Register's
// duplicate handling.
func (s *UserService) Create(ctx context.Context, email, name, password, avatar string) (*models.PublicUser, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.AlreadyExists, "User with this email already exists")
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
		Avatar:       avatar,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return nil, apperror.New(apperror.AlreadyExists, "User with this email already exists")
		}
		return nil, apperror.Wrap(apperror.Internal, "failed to create user", err)
	}

	pub := user.Public()
	return &pub, nil
}

// UpdateProfile applies partial profile changes for the given user.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, name, avatar *string) (*models.PublicUser, error) {
	if name != nil {
		user.Name = *name
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to update profile", err)
	}
	pub := user.Public()
	return &pub, nil
}
