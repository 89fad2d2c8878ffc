package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
	"campusfix/internal/services"
)

type AuthHandler struct {
	auth  services.AuthService
	users repositories.UserRepository
}

func NewAuthHandler(auth services.AuthService, users repositories.UserRepository) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// @Summary      Log in
// @Description  Exchanges email and password for a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  models.LoginRequest  true  "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[auth][login][err] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil {
		log.Printf("[auth][login][deny] unknown email=%q", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := h.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		log.Printf("[auth][login][deny] bad password email=%q", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		log.Printf("[auth][login][err] sign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	log.Printf("[auth][login][ok] userID=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /auth/me — identity behind the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := getUserID(c)
	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[auth][me][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
