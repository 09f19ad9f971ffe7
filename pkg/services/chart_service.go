package services

import (
	"fmt"
	"strconv"
	"time"

	"campus-energy-api/internal/database"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartService renders the dashboard trend series as PNG line charts for
// clients that want a static image instead of the JSON series.
type ChartService struct {
	db *database.DB
}

// NewChartService creates a new chart service
func NewChartService(db *database.DB) *ChartService {
	return &ChartService{db: db}
}

// RenderYearlyTrendChart renders summed consumption per calendar year.
func (cs *ChartService) RenderYearlyTrendChart() ([]byte, error) {
	trends, err := cs.db.GetYearlyTrends()
	if err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		return nil, fmt.Errorf("no consumption data available")
	}

	labels := make([]string, 0, len(trends))
	values := make([]float64, 0, len(trends))
	for _, t := range trends {
		labels = append(labels, t.Year)
		values = append(values, t.Consumption)
	}

	return cs.renderLineChart("Yearly Energy Consumption", labels, values)
}

// RenderMonthlyTrendChart renders summed consumption per calendar month,
// aggregated across all years.
func (cs *ChartService) RenderMonthlyTrendChart() ([]byte, error) {
	trends, err := cs.db.GetMonthlyTrends()
	if err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		return nil, fmt.Errorf("no consumption data available")
	}

	labels := make([]string, 0, len(trends))
	values := make([]float64, 0, len(trends))
	for _, t := range trends {
		labels = append(labels, monthLabel(t.Month))
		values = append(values, t.Consumption)
	}

	return cs.renderLineChart("Monthly Energy Consumption (all years)", labels, values)
}

func (cs *ChartService) renderLineChart(title string, labels []string, values []float64) ([]byte, error) {
	p, err := charts.LineRender(
		[][]float64{values},
		charts.PNGTypeOption(),
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Consumption (kWh)"}, charts.PositionRight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering trend chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("generating chart bytes: %w", err)
	}
	return buf, nil
}

// monthLabel turns a month number string ("01".."12") into its short name.
func monthLabel(month string) string {
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		return month
	}
	return time.Month(n).String()[:3]
}
