package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudharmabg/taskhive/internal/models"
	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/service"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ [Company Create] JSON binding failed - Error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company := &repository.Company{
		Name:   req.Name,
		Code:   req.Code,
		Domain: req.Domain,
	}

	log.Printf("📝 [Company Create] Creating company - Name: %s, Code: %s", req.Name, req.Code)

	if err := h.companyService.Create(c.Request.Context(), company); err != nil {
		log.Printf("❌ [Company Create] Failed - Error: %v", err)
		handleServiceError(c, err)
		return
	}

	log.Printf("✅ [Company Create] Success - CompanyID: %s", company.ID)
	c.JSON(http.StatusCreated, toCompanyResponse(company))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyResponse(company))
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.CompanyResponse, len(companies))
	for i, co := range companies {
		response[i] = toCompanyResponse(co)
	}
	c.JSON(http.StatusOK, response)
}
