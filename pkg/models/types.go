package models

// ConsumptionRecord represents one metered reading for one location on one date.
// Date is a calendar date string (YYYY-MM-DD); no time component is retained.
type ConsumptionRecord struct {
	ID             int64   `json:"id"`
	Location       string  `json:"location"`
	Date           string  `json:"date"`
	InitialReading float64 `json:"initialReading"`
	FinalReading   float64 `json:"finalReading"`
	Difference     float64 `json:"difference"`
	TotalReading   float64 `json:"totalReading"`
	Remark         *string `json:"remark"`
	IsAnomaly      bool    `json:"isAnomaly"`
}

// PredictionRecord represents one forecasted reading for one location on one
// future month (Date is the first day of that month).
type PredictionRecord struct {
	ID                   int64   `json:"id"`
	Location             string  `json:"location"`
	Date                 string  `json:"date"`
	PredictedConsumption float64 `json:"predictedConsumption"`
}

// DashboardStats holds the headline numbers shown on the dashboard.
type DashboardStats struct {
	TotalConsumption float64 `json:"totalConsumption"`
	TotalLocations   int     `json:"totalLocations"`
	TotalAnomalies   int     `json:"totalAnomalies"`
}

// YearlyTrend is the summed consumption for one calendar year.
type YearlyTrend struct {
	Year        string  `json:"year"`
	Consumption float64 `json:"consumption"`
}

// MonthlyTrend is the summed consumption for one calendar month number
// (01-12), aggregated across all years in the dataset.
type MonthlyTrend struct {
	Month       string  `json:"month"`
	Consumption float64 `json:"consumption"`
}

// TopConsumer is one entry of the top-consumers ranking.
type TopConsumer struct {
	Location         string  `json:"location"`
	TotalConsumption float64 `json:"totalConsumption"`
}
