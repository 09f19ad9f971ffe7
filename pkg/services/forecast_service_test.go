package services

import (
	"math"
	"math/rand"
	"testing"

	"campus-energy-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func record(location string, date string, total float64) models.ConsumptionRecord {
	return models.ConsumptionRecord{
		Location:     location,
		Date:         date,
		TotalReading: total,
	}
}

func TestGenerateForecastsCoverage(t *testing.T) {
	svc := NewForecastService(rand.New(rand.NewSource(1)))

	records := []models.ConsumptionRecord{
		record("Block A", "2024-01-01", 1000),
		record("Block B", "2024-01-02", 12000),
		record("Block A", "2024-02-01", 2000),
	}

	predictions := svc.GenerateForecasts(records)

	// 12 months for each distinct location, locations in first-seen order.
	assert.Len(t, predictions, 24)
	for i := 0; i < 12; i++ {
		assert.Equal(t, "Block A", predictions[i].Location)
	}
	for i := 12; i < 24; i++ {
		assert.Equal(t, "Block B", predictions[i].Location)
	}
}

func TestGenerateForecastsMonthSequence(t *testing.T) {
	svc := NewForecastService(rand.New(rand.NewSource(1)))

	predictions := svc.GenerateForecasts([]models.ConsumptionRecord{
		record("Block A", "2024-01-01", 1000),
	})

	expected := []string{
		"2025-07-01", "2025-08-01", "2025-09-01", "2025-10-01",
		"2025-11-01", "2025-12-01", "2026-01-01", "2026-02-01",
		"2026-03-01", "2026-04-01", "2026-05-01", "2026-06-01",
	}

	assert.Len(t, predictions, 12)
	for i, p := range predictions {
		assert.Equal(t, expected[i], p.Date)
	}
}

func TestGenerateForecastsValueEnvelope(t *testing.T) {
	svc := NewForecastService(rand.New(rand.NewSource(7)))

	// The last record in file order is the baseline, not the latest date.
	records := []models.ConsumptionRecord{
		record("Block A", "2024-12-01", 9000),
		record("Block A", "2024-01-01", 2000),
	}

	predictions := svc.GenerateForecasts(records)

	baseline := 2000.0
	for _, p := range predictions {
		assert.GreaterOrEqual(t, p.PredictedConsumption, 0.0)
		// seasonality swings ±500, noise ±100
		assert.InDelta(t, baseline, p.PredictedConsumption, 601)
		assert.Equal(t, math.Round(p.PredictedConsumption), p.PredictedConsumption,
			"predictions are rounded to whole kWh")
	}
}

func TestGenerateForecastsClampsAtZero(t *testing.T) {
	svc := NewForecastService(rand.New(rand.NewSource(3)))

	predictions := svc.GenerateForecasts([]models.ConsumptionRecord{
		record("Basement Meter", "2024-01-01", 0),
	})

	for _, p := range predictions {
		assert.GreaterOrEqual(t, p.PredictedConsumption, 0.0)
	}
}

func TestGenerateForecastsSeededSourceIsReproducible(t *testing.T) {
	records := []models.ConsumptionRecord{
		record("Block A", "2024-01-01", 1500),
	}

	first := NewForecastService(rand.New(rand.NewSource(42))).GenerateForecasts(records)
	second := NewForecastService(rand.New(rand.NewSource(42))).GenerateForecasts(records)

	assert.Equal(t, first, second)
}

func TestGenerateForecastsNoRecords(t *testing.T) {
	svc := NewForecastService(rand.New(rand.NewSource(1)))

	assert.Empty(t, svc.GenerateForecasts(nil))
}
