// Package report turns a projection into display-ready pieces: summary
// cards, the revenue split and the sampled chart series.
package report

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/projection"
)

// Card is one headline figure.
type Card struct {
	Title     string
	Value     string
	Note      string
	Highlight bool
}

// Slice is one part of the baseline/upsell split.
type Slice struct {
	Label string
	Value float64
	Share float64 // percent of the total, 0-100
}

// Point is one bar group in the monthly chart.
type Point struct {
	Label    string
	Period   int
	Baseline float64
	Upsell   float64
	Total    float64
}

// Report bundles everything the CLI, TUI, PDF and email views show.
type Report struct {
	Input      model.Input
	Result     model.Result
	Cumulative model.Totals
	Cards      []Card
	Split      []Slice
	Chart      []Point
}

// Build assembles the report for a finished projection.
func Build(in model.Input, res model.Result) Report {
	return Report{
		Input:      in,
		Result:     res,
		Cumulative: projection.Cumulative(res),
		Cards:      Cards(res),
		Split:      Split(res),
		Chart:      Chart(res.MonthlyData),
	}
}

// Cards returns the baseline, upsell and total summary cards.
func Cards(res model.Result) []Card {
	return []Card{
		{
			Title: "Baseline Revenue",
			Value: cli.FormatCurrency(res.BaselineRevenue),
			Note:  fmt.Sprintf("After %d months", len(res.MonthlyData)),
		},
		{
			Title:     "Upsell Revenue",
			Value:     cli.FormatCurrency(res.UpsellRevenue),
			Note:      cli.FormatPercent(res.UpsellPercentage) + " of total revenue",
			Highlight: true,
		},
		{
			Title: "Total Revenue",
			Value: cli.FormatCurrency(res.TotalRevenue),
			Note:  "Projected final revenue",
		},
	}
}

// Split returns the final-period revenue divided into baseline and upsell.
func Split(res model.Result) []Slice {
	return []Slice{
		{Label: "Baseline Revenue", Value: res.BaselineRevenue, Share: projection.Share(res.BaselineRevenue, res.TotalRevenue)},
		{Label: "Upsell Revenue", Value: res.UpsellRevenue, Share: projection.Share(res.UpsellRevenue, res.TotalRevenue)},
	}
}

// Chart samples the monthly records into labelled bar groups.
func Chart(records []model.MonthlyRecord) []Point {
	sampled := projection.Sample(records)
	points := make([]Point, 0, len(sampled))
	for _, m := range sampled {
		points = append(points, Point{
			Label:    "Month " + strconv.Itoa(m.Period),
			Period:   m.Period,
			Baseline: m.BaselineRevenue,
			Upsell:   m.UpsellRevenue,
			Total:    m.TotalRevenue,
		})
	}
	return points
}

// MaxTotal returns the largest stacked value in the chart, for scaling.
func MaxTotal(points []Point) float64 {
	var max float64
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}
	return max
}

// InputRows lists the inputs as label/value pairs in form order.
func InputRows(in model.Input) [][2]string {
	return [][2]string{
		{"Current Customers", cli.FormatNumber(int64(in.CurrentCustomers))},
		{"Average Revenue per Customer", cli.FormatCurrency(in.AverageRevenue)},
		{"Upsell Conversion Rate", cli.FormatRate(in.UpsellConversionRate)},
		{"Average Upsell Value", cli.FormatCurrency(in.UpsellAverageValue)},
		{"Monthly Growth Rate", cli.FormatRate(in.GrowthRate)},
		{"Projection Timeframe", cli.FormatMonths(in.Timeframe)},
	}
}

// MonthlyHeaders are the column titles for MonthlyRows.
var MonthlyHeaders = []string{"Month", "Customers", "Baseline", "Upsell", "Total"}

// MonthlyRows formats every period as a table row.
func MonthlyRows(records []model.MonthlyRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, m := range records {
		rows = append(rows, []string{
			strconv.Itoa(m.Period),
			cli.FormatNumber(int64(m.Customers)),
			cli.FormatCurrency(m.BaselineRevenue),
			cli.FormatCurrency(m.UpsellRevenue),
			cli.FormatCurrency(m.TotalRevenue),
		})
	}
	return rows
}

// TotalsRow formats cumulative totals in the MonthlyRows layout.
func TotalsRow(t model.Totals) []string {
	return []string{
		"Total",
		"",
		cli.FormatCurrency(t.BaselineRevenue),
		cli.FormatCurrency(t.UpsellRevenue),
		cli.FormatCurrency(t.TotalRevenue),
	}
}
