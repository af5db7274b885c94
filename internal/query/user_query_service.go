package query

import (
	"context"
	"errors"

	"github.com/underthec/deepsea/internal/cqrs"
	"github.com/underthec/deepsea/internal/models"
	"github.com/underthec/deepsea/internal/utils"
)

// ErrInvalidCredentials is returned by Login for an unknown id or a wrong
// password without revealing which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserViews serves read-model projections. Satisfied by
// repository.UserReadRepository (Redis with a Postgres fallback).
type UserViews interface {
	GetByID(ctx context.Context, id string) (*models.UserView, error)
}

// CredentialReader exposes the write model for password verification only.
type CredentialReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserQueryService answers lookups and verifies login credentials.
type UserQueryService struct {
	views UserViews
	store CredentialReader
}

func NewUserQueryService(views UserViews, store CredentialReader) *UserQueryService {
	return &UserQueryService{views: views, store: store}
}

// GetUser returns the view for an arbitrary id. The lookup endpoint has no
// ownership restriction.
func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
	return s.views.GetByID(ctx, q.UserID)
}

// GetCurrentUser re-fetches the record referenced by the session rather than
// trusting any state cached in the cookie. A session whose user has since
// been deleted surfaces repository.ErrUserNotFound.
func (s *UserQueryService) GetCurrentUser(ctx context.Context, q cqrs.GetCurrentUserQuery) (*models.UserView, error) {
	return s.views.GetByID(ctx, q.SessionUserID)
}

// Login verifies the supplied credentials and returns the account view the
// handler stores in the new session.
func (s *UserQueryService) Login(ctx context.Context, q cqrs.LoginQuery) (*models.UserView, error) {
	user, err := s.store.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(q.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &models.UserView{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}
