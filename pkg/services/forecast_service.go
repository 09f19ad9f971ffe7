package services

import (
	"math"
	"math/rand"
	"time"

	"campus-energy-api/pkg/models"
)

const (
	// forecastHorizonMonths is the number of future months predicted per
	// location on every ingestion.
	forecastHorizonMonths = 12

	// defaultBaselineKWh seeds the forecast when a location has no readings.
	defaultBaselineKWh = 500

	// seasonalAmplitudeKWh scales the sinusoidal seasonal swing.
	seasonalAmplitudeKWh = 500

	// noiseRangeKWh bounds the uniform perturbation added to each point.
	noiseRangeKWh = 100
)

// forecastAnchor is the fixed reference month; forecasts cover the twelve
// months after the month six months past it.
var forecastAnchor = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// ForecastService produces synthetic forward-looking consumption values per
// location. The model is intentionally naive: last known reading plus a
// seasonal sinusoid plus uniform noise, clamped at zero.
type ForecastService struct {
	rng *rand.Rand
}

// NewForecastService creates a forecast service. Passing a nil source seeds
// one from the clock, so successive ingestion runs produce different
// forecasts; tests inject a fixed-seed source instead.
func NewForecastService(rng *rand.Rand) *ForecastService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ForecastService{rng: rng}
}

// GenerateForecasts emits one prediction per (location, future month) pair
// for every distinct location in the normalized records. The baseline is the
// total reading of the location's last record in file order, not its
// chronologically latest reading.
func (s *ForecastService) GenerateForecasts(records []models.ConsumptionRecord) []models.PredictionRecord {
	locations := make([]string, 0)
	lastReadings := make(map[string]float64)
	for _, r := range records {
		if _, seen := lastReadings[r.Location]; !seen {
			locations = append(locations, r.Location)
		}
		lastReadings[r.Location] = r.TotalReading
	}

	predictions := make([]models.PredictionRecord, 0, len(locations)*forecastHorizonMonths)
	for _, location := range locations {
		baseline, ok := lastReadings[location]
		if !ok {
			baseline = defaultBaselineKWh
		}

		for i := 1; i <= forecastHorizonMonths; i++ {
			target := forecastAnchor.AddDate(0, i, 0)
			monthIndex := int(target.Month()) - 1

			seasonality := math.Sin(float64(monthIndex)/12*2*math.Pi) * seasonalAmplitudeKWh
			noise := (s.rng.Float64() - 0.5) * 2 * noiseRangeKWh

			predicted := baseline + seasonality + noise
			if predicted < 0 {
				predicted = 0
			}

			predictions = append(predictions, models.PredictionRecord{
				Location:             location,
				Date:                 target.Format("2006-01-02"),
				PredictedConsumption: math.Round(predicted),
			})
		}
	}

	return predictions
}
