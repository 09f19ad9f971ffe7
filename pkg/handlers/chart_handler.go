package handlers

import (
	"fmt"
	"log"
	"net/http"

	"campus-energy-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ChartHandler serves server-rendered PNG charts of the trend series.
type ChartHandler struct {
	charts *services.ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(charts *services.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// GetTrendChart handles GET /charts/trends?type=yearly|monthly.
func (h *ChartHandler) GetTrendChart(c *gin.Context) {
	chartType := c.DefaultQuery("type", "yearly")

	var (
		buf []byte
		err error
	)
	switch chartType {
	case "yearly":
		buf, err = h.charts.RenderYearlyTrendChart()
	case "monthly":
		buf, err = h.charts.RenderMonthlyTrendChart()
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("unknown chart type %q, expected 'yearly' or 'monthly'", chartType),
			"field":   "type",
		})
		return
	}

	if err != nil {
		log.Printf("[charts] rendering %s trend chart failed: %v", chartType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render chart"})
		return
	}

	c.Data(http.StatusOK, "image/png", buf)
}
