package handlers

import (
	"log"
	"net/http"

	"campus-energy-api/internal/database"

	"github.com/gin-gonic/gin"
)

// maxLocationFilterLen caps the optional location query parameter.
const maxLocationFilterLen = 200

// PredictionHandler serves the generated consumption forecasts.
type PredictionHandler struct {
	db *database.DB
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(db *database.DB) *PredictionHandler {
	return &PredictionHandler{db: db}
}

// GetPredictions returns forecast records ordered by date ascending. An
// optional "location" query parameter narrows the result to one location.
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	location := c.Query("location")
	if len(location) > maxLocationFilterLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "location must be at most 200 characters",
			"field":   "location",
		})
		return
	}

	predictions, err := h.db.GetPredictions(location)
	if err != nil {
		log.Printf("[predictions] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, predictions)
}
