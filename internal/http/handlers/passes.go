package handlers

import (
	"net/http"
	"strings"

	"gatepass/internal/http/middleware"
	"gatepass/internal/repositories"
	"gatepass/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/passes/:ref/sheet
func GetPassSheet(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		RespondError(c, http.StatusBadRequest, "pass reference is required", nil)
		return
	}

	svc := services.SheetService{
		Repo:      repositories.TripRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	pdfBytes, filename, err := svc.GenerateSheet(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
