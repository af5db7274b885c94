package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/underthec/deepsea/internal/auth"
	"github.com/underthec/deepsea/internal/command"
	"github.com/underthec/deepsea/internal/cqrs"
	"github.com/underthec/deepsea/internal/middleware"
	"github.com/underthec/deepsea/internal/models"
	"github.com/underthec/deepsea/internal/query"
	"github.com/underthec/deepsea/internal/repository"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error)
	UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.UserView, error)
	DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) (*models.User, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error)
	GetCurrentUser(ctx context.Context, q cqrs.GetCurrentUserQuery) (*models.UserView, error)
	Login(ctx context.Context, q cqrs.LoginQuery) (*models.UserView, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type RegisterUserRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type UpdateUserRequest struct {
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type CredentialsRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// GetByID serves GET /user/id?id={id}. A missing record is a client error,
// not a 404, matching the external contract.
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		middleware.RespondWithError(c, http.StatusBadRequest, "id query parameter is required")
		return
	}

	view, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{UserID: id})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusBadRequest, "user does not exist")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Me serves GET /user/me. The record is re-fetched from the store; a session
// pointing at a deleted user is cleared and treated as not logged in.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "not logged in")
		return
	}

	view, err := h.queries.GetCurrentUser(c.Request.Context(), cqrs.GetCurrentUserQuery{SessionUserID: userID})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = auth.SignOut(c)
			middleware.RespondWithError(c, http.StatusBadRequest, "not logged in")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Register serves POST /user/add.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.RegisterUser(c.Request.Context(), cqrs.RegisterUserCommand{
		UserID:   req.ID,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			middleware.RespondWithError(c, http.StatusBadRequest, "user id already registered")
			return
		}
		if errors.Is(err, command.ErrInvalidEmail) {
			middleware.RespondWithError(c, http.StatusNotAcceptable, "invalid email format")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update serves PATCH /user/update. The target is always the session's own
// account; any id in the body is ignored.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "not logged in")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID:   userID,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidEmail) {
			middleware.RespondWithError(c, http.StatusNotAcceptable, "invalid email format")
			return
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = auth.SignOut(c)
			middleware.RespondWithError(c, http.StatusBadRequest, "not logged in")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete serves DELETE /user/delete. The target id comes from the request
// body even when a session is active; with a session the session is also
// invalidated on success.
func (h *UserHandler) Delete(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	_, sessionActive := auth.CurrentUserID(c)

	user, err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{
		UserID:   req.ID,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrWrongCredentials) {
			middleware.RespondWithError(c, http.StatusBadRequest, "id or password incorrect")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	if sessionActive {
		_ = auth.SignOut(c)
	}

	c.JSON(http.StatusOK, user)
}

// Login serves POST /user/login and opens the session.
func (h *UserHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.queries.Login(c.Request.Context(), cqrs.LoginQuery{
		UserID:   req.ID,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "id or password incorrect")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := auth.SignIn(c, view.ID); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Logout serves POST /user/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	if _, ok := auth.CurrentUserID(c); !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "not logged in")
		return
	}
	if err := auth.SignOut(c); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	c.Status(http.StatusNoContent)
}
