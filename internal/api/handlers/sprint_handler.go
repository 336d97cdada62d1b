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

type SprintHandler struct {
	sprintService service.SprintService
}

func (h *SprintHandler) Create(c *gin.Context) {
	var req models.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Sprint Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	sprint := &repository.Sprint{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	}

	log.Printf("📝 [Sprint Create] Creating sprint - Name: %s, CompanyID: %s", req.Name, companyID)

	if err := h.sprintService.Create(c.Request.Context(), sprint); err != nil {
		log.Printf("❌ [Sprint Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Create] Success - SprintID: %s", sprint.SprintID)
	c.JSON(http.StatusCreated, toSprintResponse(sprint))
}

func (h *SprintHandler) Get(c *gin.Context) {
	sprint, err := h.sprintService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSprintWithStoriesResponse(sprint))
}

func (h *SprintHandler) GetBySprintID(c *gin.Context) {
	sprint, err := h.sprintService.GetBySprintID(c.Request.Context(), c.Param("sprintId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSprintResponse(sprint))
}

// GetCurrent returns the company's single active sprint with its stories.
// A company without an active sprint gets a 404.
func (h *SprintHandler) GetCurrent(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	sprint, err := h.sprintService.GetCurrent(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSprintWithStoriesResponse(sprint))
}

func (h *SprintHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	sprints, err := h.sprintService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.SprintResponse, len(sprints))
	for i, s := range sprints {
		response[i] = toSprintResponse(s)
	}
	c.JSON(http.StatusOK, response)
}

func (h *SprintHandler) Update(c *gin.Context) {
	var req models.UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := &repository.Sprint{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Progress:    req.Progress,
	}

	sprint, err := h.sprintService.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		log.Printf("❌ [Sprint Update] Failed - SprintID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Update] Success - SprintID: %s", sprint.SprintID)
	c.JSON(http.StatusOK, toSprintResponse(sprint))
}

func (h *SprintHandler) Close(c *gin.Context) {
	sprintID := c.Param("id")
	log.Printf("📝 [Sprint Close] Closing sprint - ID: %s", sprintID)

	sprint, err := h.sprintService.Close(c.Request.Context(), sprintID)
	if err != nil {
		log.Printf("❌ [Sprint Close] Failed - ID: %s, Error: %v", sprintID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Close] Success - SprintID: %s", sprint.SprintID)
	c.JSON(http.StatusOK, toSprintResponse(sprint))
}

func (h *SprintHandler) Delete(c *gin.Context) {
	if err := h.sprintService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("❌ [Sprint Delete] Failed - ID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Sprint Delete] Success - ID: %s", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Sprint deleted"})
}
