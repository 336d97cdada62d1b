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

type StoryHandler struct {
	storyService service.StoryService
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req models.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Story Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	var createdBy *string
	if userID := middleware.GetUserID(c); userID != "" {
		createdBy = &userID
	}

	story := &repository.Story{
		CompanyID:          companyID,
		CreatedBy:          createdBy,
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Priority:           req.Priority,
		Status:             req.Status,
		AssigneeID:         req.AssigneeID,
		AssigneeName:       req.AssigneeName,
		StoryPoints:        req.StoryPoints,
		Deadline:           req.Deadline,
		AcceptanceCriteria: req.AcceptanceCriteria,
	}

	log.Printf("📝 [Story Create] Creating story - Title: %s, Type: %s", req.Title, req.Type)

	if err := h.storyService.Create(c.Request.Context(), story); err != nil {
		log.Printf("❌ [Story Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Story Create] Success - StoryID: %s", story.StoryID)
	c.JSON(http.StatusCreated, toStoryResponse(story))
}

func (h *StoryHandler) Get(c *gin.Context) {
	story, err := h.storyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponse(story))
}

func (h *StoryHandler) GetByStoryID(c *gin.Context) {
	story, err := h.storyService.GetByStoryID(c.Request.Context(), c.Param("storyId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponse(story))
}

func (h *StoryHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	var stories []*repository.Story
	var err error
	if storyType := c.Query("type"); storyType != "" {
		stories, err = h.storyService.ListByType(c.Request.Context(), companyID, storyType)
	} else {
		stories, err = h.storyService.ListByCompany(c.Request.Context(), companyID)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStoryResponseList(stories))
}

// ListAvailable returns stories not yet assigned to any sprint
func (h *StoryHandler) ListAvailable(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	stories, err := h.storyService.ListAvailable(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponseList(stories))
}

func (h *StoryHandler) ListBySprint(c *gin.Context) {
	stories, err := h.storyService.ListBySprint(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStoryResponseList(stories))
}

func (h *StoryHandler) Update(c *gin.Context) {
	var req models.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := &repository.Story{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           req.Priority,
		Status:             req.Status,
		AssigneeID:         req.AssigneeID,
		AssigneeName:       req.AssigneeName,
		StoryPoints:        req.StoryPoints,
		Progress:           req.Progress,
		Deadline:           req.Deadline,
		AcceptanceCriteria: req.AcceptanceCriteria,
	}

	story, err := h.storyService.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		log.Printf("❌ [Story Update] Failed - ID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Story Update] Success - StoryID: %s", story.StoryID)
	c.JSON(http.StatusOK, toStoryResponse(story))
}

func (h *StoryHandler) AddToSprint(c *gin.Context) {
	sprintID := c.Param("id")
	storyID := c.Param("storyId")

	log.Printf("📝 [Sprint Stories] Adding story - SprintID: %s, StoryID: %s", sprintID, storyID)

	story, err := h.storyService.AddToSprint(c.Request.Context(), storyID, sprintID)
	if err != nil {
		log.Printf("❌ [Sprint Stories] Add failed - SprintID: %s, StoryID: %s, Error: %v", sprintID, storyID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Stories] Story added - StoryID: %s", story.StoryID)
	c.JSON(http.StatusOK, toStoryResponse(story))
}

func (h *StoryHandler) RemoveFromSprint(c *gin.Context) {
	storyID := c.Param("storyId")

	story, err := h.storyService.RemoveFromSprint(c.Request.Context(), storyID)
	if err != nil {
		log.Printf("❌ [Sprint Stories] Remove failed - StoryID: %s, Error: %v", storyID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Stories] Story removed - StoryID: %s", story.StoryID)
	c.JSON(http.StatusOK, toStoryResponse(story))
}

func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.storyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("❌ [Story Delete] Failed - ID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Story Delete] Success - ID: %s", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Story deleted"})
}
