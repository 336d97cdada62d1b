package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudharmabg/taskhive/internal/api/middleware"
	"github.com/Sudharmabg/taskhive/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	companyID := c.Query("companyId")
	if companyID == "" {
		companyID = middleware.GetCompanyID(c)
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), companyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
