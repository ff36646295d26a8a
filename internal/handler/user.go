package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carpool/internal/domain"
	internalRedis "carpool/internal/redis"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userRepo   repository.UserRepository
	cacheStore internalRedis.CacheStoreInterface
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository, cacheStore internalRedis.CacheStoreInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo, cacheStore: cacheStore}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest is the HTTP request body for login by email.
type LoginRequest struct {
	Email string `json:"email"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		respondError(c, service.ErrInvalidName)
		return
	}

	// Email uniqueness is case-insensitive; normalize once at the boundary.
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		respondError(c, service.ErrInvalidEmail)
		return
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login handles POST /v1/users/login
//
// Identity here is caller-asserted: login is an existence lookup by email,
// not a credential check. The identity collaborator in front of this
// service is expected to do any real authentication.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		respondError(c, service.ErrInvalidEmail)
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// GetUser handles GET /v1/users/:id with cache-aside profile lookup.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")
	ctx := c.Request.Context()

	if h.cacheStore != nil {
		cached, err := h.cacheStore.GetUser(ctx, userID)
		if err == nil && cached != nil {
			respondJSON(c, http.StatusOK, UserResponse{
				ID:    cached.ID,
				Name:  cached.Name,
				Email: cached.Email,
			})
			return
		}
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cacheStore != nil {
		_ = h.cacheStore.SetUser(ctx, &internalRedis.CachedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}

	respondJSON(c, http.StatusOK, UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []UserResponse
	for _, u := range users {
		response = append(response, UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		})
	}

	c.JSON(http.StatusOK, response)
}
