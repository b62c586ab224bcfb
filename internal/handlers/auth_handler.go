package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/middleware"
	"budgetbook/internal/services"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{accountService: accountService, auditService: auditService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration. A new account comes with the default
// category set already provisioned.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.accountService.Register(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "REGISTER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Login authenticates a user. A wrong username or password is a normal
// negative result from the service; only here does it become a 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.accountService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if user == nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.accountService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
