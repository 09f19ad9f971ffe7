package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"campus-energy-api/internal/database"
	"campus-energy-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// IngestionService sequences a full ingestion run: parse workbook, normalize
// rows, classify anomalies, generate forecasts, then wholesale-replace the
// stored dataset. Ingesting a new file discards all prior consumption and
// prediction data.
type IngestionService struct {
	db        *database.DB
	forecasts *ForecastService
}

// NewIngestionService creates an ingestion service backed by the given store.
func NewIngestionService(db *database.DB, forecasts *ForecastService) *IngestionService {
	return &IngestionService{
		db:        db,
		forecasts: forecasts,
	}
}

// IngestWorkbook processes an Excel workbook from a reader and returns the
// number of consumption records imported. Structural problems (unreadable
// binary, no sheet, no data rows) fail the run; malformed cells inside rows
// degrade to defaults and only surface in the logs.
func (s *IngestionService) IngestWorkbook(r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return 0, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("workbook needs a header row and at least one data row")
	}

	normalizer := NewRowNormalizer(rows[0])
	now := time.Now()

	records := make([]models.ConsumptionRecord, 0, len(rows)-1)
	defaulted := 0
	for _, row := range rows[1:] {
		normalized := normalizer.NormalizeRow(row, now)
		defaulted += len(normalized.Warnings)

		records = append(records, models.ConsumptionRecord{
			Location:       normalized.Location,
			Date:           normalized.Date,
			InitialReading: normalized.InitialReading,
			FinalReading:   normalized.FinalReading,
			Difference:     normalized.Difference,
			TotalReading:   normalized.TotalReading,
			Remark:         normalized.Remark,
			IsAnomaly:      IsAnomalousReading(normalized.TotalReading),
		})
	}

	if defaulted > 0 {
		log.Printf("[ingest] %d field(s) across %d row(s) were malformed and defaulted", defaulted, len(records))
	}

	predictions := s.forecasts.GenerateForecasts(records)

	if err := s.db.ReplaceDataset(records, predictions); err != nil {
		return 0, fmt.Errorf("replacing dataset: %w", err)
	}

	log.Printf("[ingest] imported %d consumption record(s), %d prediction(s)", len(records), len(predictions))
	return len(records), nil
}

// IngestFile processes a workbook from disk.
func (s *IngestionService) IngestFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening workbook file: %w", err)
	}
	defer f.Close()

	return s.IngestWorkbook(f)
}

// SeedIfEmpty ingests the configured default workbook when the store holds no
// consumption data yet. A missing seed file is not an error; the store just
// starts empty.
func (s *IngestionService) SeedIfEmpty(path string) error {
	hasData, err := s.db.HasConsumptionData()
	if err != nil {
		return fmt.Errorf("checking for existing data: %w", err)
	}
	if hasData {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[seed] no seed workbook at %s, starting with an empty store", path)
		return nil
	}

	log.Printf("[seed] seeding database from %s", path)
	count, err := s.IngestFile(path)
	if err != nil {
		return fmt.Errorf("seeding from %s: %w", path, err)
	}

	log.Printf("[seed] seeded %d record(s)", count)
	return nil
}
