package services

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"campus-energy-api/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var workbookHeader = []interface{}{
	"LOCATION OF KWH METERS", "DATE", "TOTAL  READING(KWH)", "INITIAL READING", "FINAL READING", "DIFFERENCE", "REMARK",
}

// buildWorkbook writes rows (header included) into the first sheet of a new
// workbook and returns the serialized bytes.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newTestIngestion(t *testing.T) (*IngestionService, *database.DB) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewIngestionService(db, NewForecastService(rand.New(rand.NewSource(1))))
	return svc, db
}

func TestIngestWorkbookEndToEnd(t *testing.T) {
	svc, db := newTestIngestion(t)

	workbook := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Block A", 45000, "5,000"},
		{"Block B", 45001, "12,000"},
	})

	count, err := svc.IngestWorkbook(bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 17000.0, stats.TotalConsumption)
	assert.Equal(t, 2, stats.TotalLocations)
	assert.Equal(t, 1, stats.TotalAnomalies)

	anomalies, err := db.GetAnomalies()
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Block B", anomalies[0].Location)
	assert.Equal(t, 12000.0, anomalies[0].TotalReading)
}

func TestIngestWorkbookForecastCoverage(t *testing.T) {
	svc, db := newTestIngestion(t)

	workbook := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Block A", 45000, "5,000"},
		{"Block B", 45001, "3,000"},
		{"Block A", 45002, "4,000"},
	})

	_, err := svc.IngestWorkbook(bytes.NewReader(workbook))
	require.NoError(t, err)

	// Exactly 12 months per distinct location.
	predictions, err := db.GetPredictions("")
	require.NoError(t, err)
	assert.Len(t, predictions, 24)

	locations, err := db.GetLocations()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Block A", "Block B"}, locations)

	predicted := make(map[string]bool)
	for _, p := range predictions {
		predicted[p.Location] = true
	}
	assert.ElementsMatch(t, []string{"Block A", "Block B"}, mapKeys(predicted))
}

func mapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestIngestWorkbookWholesaleReplace(t *testing.T) {
	svc, db := newTestIngestion(t)

	first := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Block A", 45000, "5,000"},
	})
	second := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Block C", 45010, "7,000"},
	})

	_, err := svc.IngestWorkbook(bytes.NewReader(first))
	require.NoError(t, err)
	_, err = svc.IngestWorkbook(bytes.NewReader(second))
	require.NoError(t, err)

	locations, err := db.GetLocations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Block C"}, locations)

	predictions, err := db.GetPredictions("")
	require.NoError(t, err)
	require.Len(t, predictions, 12)
	for _, p := range predictions {
		assert.Equal(t, "Block C", p.Location)
	}
}

func TestIngestWorkbookMalformedRowsDegradeToDefaults(t *testing.T) {
	svc, db := newTestIngestion(t)

	workbook := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"", "not a date", "not a number"},
	})

	count, err := svc.IngestWorkbook(bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	locations, err := db.GetLocations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Unknown"}, locations)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalConsumption)
}

func TestIngestWorkbookRejectsCorruptBinary(t *testing.T) {
	svc, db := newTestIngestion(t)

	// Seed valid data first, then verify a failed ingestion leaves it intact.
	valid := buildWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Block A", 45000, "5,000"},
	})
	_, err := svc.IngestWorkbook(bytes.NewReader(valid))
	require.NoError(t, err)

	_, err = svc.IngestWorkbook(strings.NewReader("this is not a workbook"))
	assert.Error(t, err)

	locations, err := db.GetLocations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Block A"}, locations)
}

func TestIngestWorkbookRequiresDataRows(t *testing.T) {
	svc, _ := newTestIngestion(t)

	headerOnly := buildWorkbook(t, [][]interface{}{workbookHeader})

	_, err := svc.IngestWorkbook(bytes.NewReader(headerOnly))
	assert.ErrorContains(t, err, "at least one data row")
}

func TestSeedIfEmpty(t *testing.T) {
	svc, db := newTestIngestion(t)

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range [][]interface{}{
		workbookHeader,
		{"Block A", 45000, "5,000"},
	} {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	require.NoError(t, f.SaveAs(seedPath))
	require.NoError(t, f.Close())

	require.NoError(t, svc.SeedIfEmpty(seedPath))

	hasData, err := db.HasConsumptionData()
	require.NoError(t, err)
	assert.True(t, hasData)

	// A second call is a no-op once data exists.
	require.NoError(t, svc.SeedIfEmpty(filepath.Join(dir, "missing.xlsx")))

	locations, err := db.GetLocations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Block A"}, locations)
}

func TestSeedIfEmptyMissingFileIsNotAnError(t *testing.T) {
	svc, db := newTestIngestion(t)

	require.NoError(t, svc.SeedIfEmpty(filepath.Join(t.TempDir(), "absent.xlsx")))

	hasData, err := db.HasConsumptionData()
	require.NoError(t, err)
	assert.False(t, hasData)
}
