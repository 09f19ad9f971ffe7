package services

// AnomalyThresholdKWh is the fixed cutoff above which a reading is flagged.
// Classification happens once at ingestion time and is stored with the
// record; it is never recomputed afterward.
const AnomalyThresholdKWh = 10000

// IsAnomalousReading reports whether a total reading exceeds the fixed
// threshold. A reading exactly at the threshold is not an anomaly.
func IsAnomalousReading(totalReading float64) bool {
	return totalReading > AnomalyThresholdKWh
}
