package handlers

import (
	"net/http"

	"barbershop/services/reports"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports reports.ReportService
}

func NewReportHandler(svc reports.ReportService) *ReportHandler {
	return &ReportHandler{Reports: svc}
}

// GetReport aggregates the owner's appointments; ?from=&to= are optional
// YYYY-MM-DD bounds.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.Reports.Build(c.Request.Context(), ownerShopID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
