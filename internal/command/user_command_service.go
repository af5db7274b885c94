package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/underthec/deepsea/internal/cqrs"
	"github.com/underthec/deepsea/internal/events"
	"github.com/underthec/deepsea/internal/models"
	"github.com/underthec/deepsea/internal/repository"
	"github.com/underthec/deepsea/internal/utils"
)

var (
	// ErrInvalidEmail is returned when an email fails the format check.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWrongCredentials is returned when a deletion names an unknown id or
	// the wrong password. The two cases are deliberately indistinguishable.
	ErrWrongCredentials = errors.New("id or password incorrect")
)

// Accepted emails are alphanumeric local@domain.tld segments only.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9]+@[A-Za-z0-9]+\.[A-Za-z0-9]+$`)

// UserStore is the write-store capability the command service depends on.
// Satisfied by repository.UserWriteRepository and by in-memory fakes in tests.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// ViewCacher keeps the read model in step with mutations.
type ViewCacher interface {
	CacheUserView(ctx context.Context, view *models.UserView)
	InvalidateUserView(ctx context.Context, userID string)
}

// EventPublisher appends lifecycle events to the user event stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService writes user state to the store and keeps the read model
// and event stream up to date.
type UserCommandService struct {
	store     UserStore
	views     ViewCacher
	publisher EventPublisher
}

func NewUserCommandService(store UserStore, views ViewCacher, publisher EventPublisher) *UserCommandService {
	return &UserCommandService{
		store:     store,
		views:     views,
		publisher: publisher,
	}
}

// RegisterUser creates a new account. The duplicate-id check runs before the
// email format check, so a taken id fails the same way regardless of the
// email. The check-then-insert pair is not atomic; a concurrent duplicate
// registration is caught by the primary key instead.
func (s *UserCommandService) RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	_, err := s.store.GetByID(ctx, cmd.UserID)
	if err == nil {
		return nil, repository.ErrDuplicateID
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if !emailPattern.MatchString(cmd.Email) {
		return nil, ErrInvalidEmail
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           cmd.UserID,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	s.views.CacheUserView(ctx, userToView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return user, nil
}

// UpdateUser overwrites the password and email of the session's own account.
// Returns repository.ErrUserNotFound when the session references a record
// that no longer exists.
func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.UserView, error) {
	if !emailPattern.MatchString(cmd.Email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.store.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Email = cmd.Email
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}

	view := userToView(user)
	s.views.CacheUserView(ctx, view)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserUpdated, events.UserUpdatedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish user.updated event: %v", err)
	}
	return view, nil
}

// DeleteUser removes the account named in the command once the supplied
// password matches the stored credential. An unknown id and a wrong password
// both fail with ErrWrongCredentials. Returns the deleted record.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) (*models.User, error) {
	user, err := s.store.GetByID(ctx, cmd.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrWrongCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, ErrWrongCredentials
	}

	if err := s.store.Delete(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	s.views.InvalidateUserView(ctx, cmd.UserID)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserDeleted, events.UserDeletedEvent{
		UserID: cmd.UserID,
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return user, nil
}

func userToView(u *models.User) *models.UserView {
	return &models.UserView{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
