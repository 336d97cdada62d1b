package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudharmabg/taskhive/internal/api/middleware"
	"github.com/Sudharmabg/taskhive/internal/models"
	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [User Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	user := &repository.User{
		CompanyID:   companyID,
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Designation: req.Designation,
		JobRole:     req.JobRole,
		Role:        req.Role,
	}

	log.Printf("📝 [User Create] Creating user - Name: %s, Email: %s", req.Name, req.Email)

	created, err := h.userService.Create(c.Request.Context(), user, req.Team)
	if err != nil {
		log.Printf("❌ [User Create] Failed - Email: %s, Error: %v", req.Email, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [User Create] Success - UserID: %s, Status: %s", created.ID, created.Status)
	c.JSON(http.StatusCreated, toUserResponse(created))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	users, err := h.userService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.UserResponse, len(users))
	for i, u := range users {
		response[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [User Update] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := &repository.User{
		Name:        req.Name,
		Email:       req.Email,
		Designation: req.Designation,
		JobRole:     req.JobRole,
		TeamID:      req.TeamID,
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		log.Printf("❌ [User Update] Failed - UserID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [User Update] Success - UserID: %s", user.ID)
	c.JSON(http.StatusOK, toUserResponse(user))
}

// IssueSetupToken regenerates a user's password-setup token, for resending
// the activation link
func (h *UserHandler) IssueSetupToken(c *gin.Context) {
	userID := c.Param("id")

	token, err := h.userService.IssueSetupToken(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ [User Setup Token] Failed - UserID: %s, Error: %v", userID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [User Setup Token] Issued - UserID: %s", userID)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("❌ [User Delete] Failed - UserID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [User Delete] Success - UserID: %s", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
