package handlers

import (
	"log"
	"net/http"

	"campus-energy-api/internal/database"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregate statistics behind the dashboard.
type DashboardHandler struct {
	db *database.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *database.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// GetStats returns total consumption, distinct location count and anomaly
// count.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		log.Printf("[dashboard] stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetYearlyTrends returns consumption summed per calendar year.
func (h *DashboardHandler) GetYearlyTrends(c *gin.Context) {
	trends, err := h.db.GetYearlyTrends()
	if err != nil {
		log.Printf("[dashboard] yearly trends query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, trends)
}

// GetMonthlyTrends returns consumption summed per calendar month across all
// years.
func (h *DashboardHandler) GetMonthlyTrends(c *gin.Context) {
	trends, err := h.db.GetMonthlyTrends()
	if err != nil {
		log.Printf("[dashboard] monthly trends query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, trends)
}

// GetTopConsumers returns the ten highest-consuming locations.
func (h *DashboardHandler) GetTopConsumers(c *gin.Context) {
	consumers, err := h.db.GetTopConsumers()
	if err != nil {
		log.Printf("[dashboard] top consumers query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, consumers)
}

// GetAnomalies returns flagged records, newest first.
func (h *DashboardHandler) GetAnomalies(c *gin.Context) {
	anomalies, err := h.db.GetAnomalies()
	if err != nil {
		log.Printf("[dashboard] anomalies query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, anomalies)
}

// GetLocations returns the distinct locations present in the dataset.
func (h *DashboardHandler) GetLocations(c *gin.Context) {
	locations, err := h.db.GetLocations()
	if err != nil {
		log.Printf("[dashboard] locations query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, locations)
}
