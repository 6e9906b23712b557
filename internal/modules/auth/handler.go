package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/pkg/response"
	"autoshop/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

// RegisterAdminRoutes mounts user management behind the ADMIN gate.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:id/active", h.SetUserActive)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) SetUserActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	if err := h.service.SetUserActive(c.Request.Context(), id, *req.Active); err != nil {
		writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrUserInactive):
		response.Error(c, http.StatusForbidden, "USER_INACTIVE", "Account is deactivated")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed")
	}
}
