package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudharmabg/taskhive/internal/models"
	"github.com/Sudharmabg/taskhive/internal/service"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	authService service.AuthService
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Login] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("📝 [Login] Attempt - Email: %s", req.Username)

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("❌ [Login] Failed - Email: %s, Error: %v", req.Username, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Login] Success - UserID: %s", user.ID)
	c.JSON(http.StatusOK, models.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) SetupPassword(c *gin.Context) {
	var req models.SetupPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.SetupPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		log.Printf("❌ [Setup Password] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Setup Password] Account activated - UserID: %s", user.ID)
	c.JSON(http.StatusOK, toUserResponse(user))
}
