package database

import (
	"database/sql"
	"fmt"

	"campus-energy-api/pkg/models"

	_ "modernc.org/sqlite"
)

// insertChunkSize bounds the number of rows per bulk INSERT statement.
const insertChunkSize = 500

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS consumption_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL,
		date TEXT NOT NULL,
		initial_reading REAL,
		final_reading REAL,
		difference REAL,
		total_reading REAL NOT NULL,
		remark TEXT,
		is_anomaly INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL,
		date TEXT NOT NULL,
		predicted_consumption REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_consumption_date ON consumption_data(date);
	CREATE INDEX IF NOT EXISTS idx_consumption_location ON consumption_data(location);
	CREATE INDEX IF NOT EXISTS idx_consumption_anomaly ON consumption_data(is_anomaly);
	CREATE INDEX IF NOT EXISTS idx_predictions_location ON predictions(location);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// ReplaceDataset replaces the entire consumption and prediction datasets in a
// single transaction. A failure at any point rolls back, so readers never see
// a half-populated store.
func (db *DB) ReplaceDataset(records []models.ConsumptionRecord, predictions []models.PredictionRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM consumption_data`); err != nil {
		return fmt.Errorf("clearing consumption data: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM predictions`); err != nil {
		return fmt.Errorf("clearing predictions: %w", err)
	}

	insertRecord, err := tx.Prepare(`
	INSERT INTO consumption_data (location, date, initial_reading, final_reading, difference, total_reading, remark, is_anomaly)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing consumption insert: %w", err)
	}
	defer insertRecord.Close()

	for start := 0; start < len(records); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(records) {
			end = len(records)
		}
		for _, r := range records[start:end] {
			anomaly := 0
			if r.IsAnomaly {
				anomaly = 1
			}
			var remark sql.NullString
			if r.Remark != nil {
				remark = sql.NullString{String: *r.Remark, Valid: true}
			}
			if _, err := insertRecord.Exec(r.Location, r.Date, r.InitialReading, r.FinalReading, r.Difference, r.TotalReading, remark, anomaly); err != nil {
				return fmt.Errorf("inserting consumption record: %w", err)
			}
		}
	}

	insertPrediction, err := tx.Prepare(`
	INSERT INTO predictions (location, date, predicted_consumption)
	VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing prediction insert: %w", err)
	}
	defer insertPrediction.Close()

	for start := 0; start < len(predictions); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(predictions) {
			end = len(predictions)
		}
		for _, p := range predictions[start:end] {
			if _, err := insertPrediction.Exec(p.Location, p.Date, p.PredictedConsumption); err != nil {
				return fmt.Errorf("inserting prediction record: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dataset replace: %w", err)
	}
	return nil
}

// GetStats returns the headline dashboard numbers
func (db *DB) GetStats() (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := db.conn.QueryRow(`SELECT COALESCE(SUM(total_reading), 0) FROM consumption_data`).Scan(&stats.TotalConsumption)
	if err != nil {
		return stats, fmt.Errorf("querying total consumption: %w", err)
	}

	err = db.conn.QueryRow(`SELECT COUNT(DISTINCT location) FROM consumption_data`).Scan(&stats.TotalLocations)
	if err != nil {
		return stats, fmt.Errorf("querying location count: %w", err)
	}

	err = db.conn.QueryRow(`SELECT COUNT(*) FROM consumption_data WHERE is_anomaly = 1`).Scan(&stats.TotalAnomalies)
	if err != nil {
		return stats, fmt.Errorf("querying anomaly count: %w", err)
	}

	return stats, nil
}

// GetYearlyTrends returns summed consumption grouped by calendar year,
// ordered ascending by year
func (db *DB) GetYearlyTrends() ([]models.YearlyTrend, error) {
	query := `
	SELECT strftime('%Y', date) AS year, SUM(total_reading)
	FROM consumption_data
	GROUP BY year
	ORDER BY year ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying yearly trends: %w", err)
	}
	defer rows.Close()

	results := make([]models.YearlyTrend, 0)
	for rows.Next() {
		var t models.YearlyTrend
		if err := rows.Scan(&t.Year, &t.Consumption); err != nil {
			return nil, fmt.Errorf("scanning yearly trend: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// GetMonthlyTrends returns summed consumption grouped by calendar month
// number (01-12) across all years, ordered ascending by month
func (db *DB) GetMonthlyTrends() ([]models.MonthlyTrend, error) {
	query := `
	SELECT strftime('%m', date) AS month, SUM(total_reading)
	FROM consumption_data
	GROUP BY month
	ORDER BY month ASC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying monthly trends: %w", err)
	}
	defer rows.Close()

	results := make([]models.MonthlyTrend, 0)
	for rows.Next() {
		var t models.MonthlyTrend
		if err := rows.Scan(&t.Month, &t.Consumption); err != nil {
			return nil, fmt.Errorf("scanning monthly trend: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// GetTopConsumers returns the ten locations with the highest summed
// consumption. Ties are broken by location name ascending so the ranking is
// deterministic.
func (db *DB) GetTopConsumers() ([]models.TopConsumer, error) {
	query := `
	SELECT location, SUM(total_reading) AS total
	FROM consumption_data
	GROUP BY location
	ORDER BY total DESC, location ASC
	LIMIT 10
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying top consumers: %w", err)
	}
	defer rows.Close()

	results := make([]models.TopConsumer, 0)
	for rows.Next() {
		var c models.TopConsumer
		if err := rows.Scan(&c.Location, &c.TotalConsumption); err != nil {
			return nil, fmt.Errorf("scanning top consumer: %w", err)
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

// GetAnomalies returns flagged records, newest first, capped at 100
func (db *DB) GetAnomalies() ([]models.ConsumptionRecord, error) {
	query := `
	SELECT id, location, date, initial_reading, final_reading, difference, total_reading, remark, is_anomaly
	FROM consumption_data
	WHERE is_anomaly = 1
	ORDER BY date DESC
	LIMIT 100
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying anomalies: %w", err)
	}
	defer rows.Close()

	return scanConsumptionRows(rows)
}

// GetPredictions returns prediction records ordered by date ascending,
// optionally filtered to a single location
func (db *DB) GetPredictions(location string) ([]models.PredictionRecord, error) {
	query := `
	SELECT id, location, date, predicted_consumption
	FROM predictions
	`
	args := []interface{}{}
	if location != "" {
		query += `WHERE location = ?
	`
		args = append(args, location)
	}
	query += `ORDER BY date ASC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	results := make([]models.PredictionRecord, 0)
	for rows.Next() {
		var p models.PredictionRecord
		if err := rows.Scan(&p.ID, &p.Location, &p.Date, &p.PredictedConsumption); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		results = append(results, p)
	}

	return results, rows.Err()
}

// GetLocations returns the distinct location names present in the
// consumption data
func (db *DB) GetLocations() ([]string, error) {
	rows, err := db.conn.Query(`SELECT location FROM consumption_data GROUP BY location`)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	results := make([]string, 0)
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		results = append(results, location)
	}

	return results, rows.Err()
}

// HasConsumptionData checks whether any consumption records exist
func (db *DB) HasConsumptionData() (bool, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM consumption_data`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting consumption data: %w", err)
	}
	return count > 0, nil
}

func scanConsumptionRows(rows *sql.Rows) ([]models.ConsumptionRecord, error) {
	results := make([]models.ConsumptionRecord, 0)
	for rows.Next() {
		var r models.ConsumptionRecord
		var remark sql.NullString
		var anomaly int

		if err := rows.Scan(&r.ID, &r.Location, &r.Date, &r.InitialReading, &r.FinalReading, &r.Difference, &r.TotalReading, &remark, &anomaly); err != nil {
			return nil, fmt.Errorf("scanning consumption record: %w", err)
		}

		if remark.Valid {
			r.Remark = &remark.String
		}
		r.IsAnomaly = anomaly == 1

		results = append(results, r)
	}

	return results, rows.Err()
}
