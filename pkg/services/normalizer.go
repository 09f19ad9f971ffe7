package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Expected column headers of the uploaded meter-reading workbook. The total
// reading header really does contain a double space; sheets that deviate from
// these labels get defaulted values rather than a hard failure.
const (
	colLocation     = "LOCATION OF KWH METERS"
	colDate         = "DATE"
	colTotalReading = "TOTAL  READING(KWH)"
	colInitial      = "INITIAL READING"
	colFinal        = "FINAL READING"
	colDifference   = "DIFFERENCE"
	colRemark       = "REMARK"
)

// unixEpochSerial is the Excel serial day number of 1970-01-01 (serial dates
// count days since 1899-12-30).
const unixEpochSerial = 25569

// NormalizedRow is the result of normalizing one raw worksheet row: the typed
// record plus a description of every field that had to be defaulted.
type NormalizedRow struct {
	Location       string
	Date           string
	InitialReading float64
	FinalReading   float64
	Difference     float64
	TotalReading   float64
	Remark         *string
	Warnings       []string
}

// RowNormalizer converts raw worksheet rows into normalized consumption
// values. It never fails a row: malformed cells degrade to defaults
// ("Unknown" location, processing-time date, zero readings).
type RowNormalizer struct {
	locationCol   int
	dateCol       int
	totalCol      int
	initialCol    int
	finalCol      int
	differenceCol int
	remarkCol     int
}

// NewRowNormalizer resolves the column layout from the worksheet header row.
func NewRowNormalizer(header []string) *RowNormalizer {
	return &RowNormalizer{
		locationCol:   findColumn(header, colLocation),
		dateCol:       findColumn(header, colDate),
		totalCol:      findColumn(header, colTotalReading),
		initialCol:    findColumn(header, colInitial),
		finalCol:      findColumn(header, colFinal),
		differenceCol: findColumn(header, colDifference),
		remarkCol:     findColumn(header, colRemark),
	}
}

// findColumn finds the index of the first candidate in a header row
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, item := range header {
			if strings.EqualFold(strings.TrimSpace(item), candidate) {
				return i
			}
		}
	}
	return -1
}

// NormalizeRow converts one raw row into a normalized consumption row. The
// caller supplies the processing timestamp used as the date fallback, which
// keeps the transform pure.
func (n *RowNormalizer) NormalizeRow(row []string, now time.Time) NormalizedRow {
	var result NormalizedRow

	result.Location = cellAt(row, n.locationCol)
	if result.Location == "" {
		result.Location = "Unknown"
		result.Warnings = append(result.Warnings, "location missing, defaulted to Unknown")
	}

	rawDate := cellAt(row, n.dateCol)
	date, ok := parseCellDate(rawDate, now)
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unparseable date %q, defaulted to processing time", rawDate))
	}
	result.Date = date.UTC().Format("2006-01-02")

	result.TotalReading = n.parseReading(row, n.totalCol, colTotalReading, &result.Warnings)
	result.InitialReading = n.parseReading(row, n.initialCol, colInitial, &result.Warnings)
	result.FinalReading = n.parseReading(row, n.finalCol, colFinal, &result.Warnings)
	result.Difference = n.parseReading(row, n.differenceCol, colDifference, &result.Warnings)

	if remark := cellAt(row, n.remarkCol); remark != "" {
		result.Remark = &remark
	}

	return result
}

// parseReading coerces a numeric cell, stripping thousands separators and
// surrounding whitespace. Absent cells are zero without comment; present but
// unparseable cells are zero with a warning.
func (n *RowNormalizer) parseReading(row []string, col int, label string, warnings *[]string) float64 {
	raw := cellAt(row, col)
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("non-numeric %s %q, defaulted to 0", label, raw))
		return 0
	}
	return value
}

// parseCellDate resolves a raw date cell, attempting in order: Excel serial
// number, slash/hyphen separated string (day-first and month-first), then a
// handful of common literal layouts. On failure it reports !ok and returns
// the supplied processing timestamp.
func parseCellDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, false
	}

	// Serial date: days since 1899-12-30
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		seconds := math.Round((serial - unixEpochSerial) * 86400)
		return time.Unix(int64(seconds), 0).UTC(), true
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) == 3 && len(parts[2]) == 4 {
		// Month-first wins when both readings are plausible, matching how
		// the upstream spreadsheets have historically been interpreted.
		if t, err := time.Parse("1/2/2006", strings.Join(parts, "/")); err == nil {
			return t, true
		}
		swapped := []string{parts[1], parts[0], parts[2]}
		if t, err := time.Parse("1/2/2006", strings.Join(swapped, "/")); err == nil {
			return t, true
		}
		return now, false
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
		"Jan 2, 2006",
		"2-Jan-06",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return now, false
}

// cellAt safely fetches a trimmed cell value; worksheet rows drop trailing
// empty cells so the index can be past the end.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
