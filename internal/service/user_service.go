package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menu_api/internal/model"
	"menu_api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)

// UserService defines operations for users
type UserService interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser applies defaults and inserts the user. Email uniqueness is
// enforced by the store's unique index; the duplicate-key error from the
// insert is the conflict signal, so no read-then-insert race exists.
func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.DefaultUserRole
	}

	user := &model.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// GetUsers returns all users, newest first
func (s *userService) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users from repository: %w", err)
	}
	return users, nil
}

// GetUserByID returns a single user or ErrUserNotFound
func (s *userService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes a user, reporting ErrUserNotFound when no record exists
func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if existing == nil {
		return ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user in repository: %w", err)
	}
	return nil
}
