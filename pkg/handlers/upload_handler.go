package handlers

import (
	"log"
	"net/http"
	"os"

	"campus-energy-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// UploadHandler accepts meter-reading workbooks and runs the ingestion
// pipeline over them.
type UploadHandler struct {
	ingestion *services.IngestionService
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler. Uploaded files are staged in
// uploadDir and removed again whether or not ingestion succeeds.
func NewUploadHandler(ingestion *services.IngestionService, uploadDir string) *UploadHandler {
	return &UploadHandler{
		ingestion: ingestion,
		uploadDir: uploadDir,
	}
}

// Upload handles POST /upload. The workbook arrives as multipart field
// "file"; on success the stored dataset has been wholesale-replaced with the
// file's contents plus fresh forecasts.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("[upload] creating upload dir failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*.xlsx")
	if err != nil {
		log.Printf("[upload] creating temp file failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()

	// The staged artifact is removed on every exit path.
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		log.Printf("[upload] saving uploaded file failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
		return
	}

	log.Printf("[upload] file received: %s (original name: %s)", tmpPath, fileHeader.Filename)

	count, err := h.ingestion.IngestFile(tmpPath)
	if err != nil {
		log.Printf("[upload] excel processing error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Failed to process Excel file",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Data imported successfully",
		"records": count,
	})
}
