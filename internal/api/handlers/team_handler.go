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

// TeamHandler handles team-related HTTP requests
type TeamHandler struct {
	teamService service.TeamService
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Team Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	team := &repository.Team{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}

	log.Printf("📝 [Team Create] Creating team - Name: %s, CompanyID: %s", req.Name, companyID)

	if err := h.teamService.Create(c.Request.Context(), team); err != nil {
		log.Printf("❌ [Team Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Team Create] Success - TeamID: %s", team.ID)
	c.JSON(http.StatusCreated, toTeamResponse(team, nil))
}

func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.teamService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team, nil))
}

func (h *TeamHandler) List(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	teams, err := h.teamService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.TeamResponse, len(teams))
	for i, t := range teams {
		response[i] = toTeamResponse(t.Team, t.Members)
	}
	c.JSON(http.StatusOK, response)
}

func (h *TeamHandler) Update(c *gin.Context) {
	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := &repository.Team{
		Name:        req.Name,
		Description: req.Description,
	}

	team, err := h.teamService.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		log.Printf("❌ [Team Update] Failed - TeamID: %s, Error: %v", c.Param("id"), err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Team Update] Success - TeamID: %s", team.ID)
	c.JSON(http.StatusOK, toTeamResponse(team, nil))
}

// ReplaceMembers swaps the team roster for the given member names. Names that
// match no user in the team's company are reported back, not rejected.
func (h *TeamHandler) ReplaceMembers(c *gin.Context) {
	var req models.ReplaceMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teamID := c.Param("id")
	log.Printf("📝 [Team Members] Replacing members - TeamID: %s, Count: %d", teamID, len(req.Members))

	resolution, err := h.teamService.ReplaceMembers(c.Request.Context(), teamID, req.Members)
	if err != nil {
		log.Printf("❌ [Team Members] Failed - TeamID: %s, Error: %v", teamID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Team Members] Success - TeamID: %s, Matched: %d, Unmatched: %d",
		teamID, len(resolution.Matched), len(resolution.Unmatched))
	c.JSON(http.StatusOK, models.MemberResolutionResponse{
		Matched:   safeStringSlice(resolution.Matched),
		Unmatched: safeStringSlice(resolution.Unmatched),
	})
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID := c.Param("id")
	if err := h.teamService.Delete(c.Request.Context(), teamID); err != nil {
		log.Printf("❌ [Team Delete] Failed - TeamID: %s, Error: %v", teamID, err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Team Delete] Success - TeamID: %s", teamID)
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}
