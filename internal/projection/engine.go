// Package projection computes month-by-month revenue projections split
// into baseline and upsell revenue.
package projection

import (
	"math"

	"github.com/theirongolddev/upsell/internal/model"
)

// Project validates in and runs the discrete compounding projection.
//
// Each period grows the previous period's rounded customer count, so the
// series diverges from a closed-form exponential once timeframe > 1.
func Project(in model.Input) (model.Result, error) {
	if err := Validate(in); err != nil {
		return model.Result{}, err
	}

	growth := 1 + in.GrowthRate/100
	conversion := in.UpsellConversionRate / 100

	monthly := make([]model.MonthlyRecord, 0, in.Timeframe)
	customers := in.CurrentCustomers
	for period := 1; period <= in.Timeframe; period++ {
		customers = Round(float64(customers) * growth)

		baseline := float64(customers) * in.AverageRevenue
		upsell := float64(customers) * conversion * in.UpsellAverageValue

		monthly = append(monthly, model.MonthlyRecord{
			Period:          period,
			Customers:       customers,
			BaselineRevenue: baseline,
			UpsellRevenue:   upsell,
			TotalRevenue:    baseline + upsell,
		})
	}

	last := monthly[len(monthly)-1]
	return model.Result{
		BaselineRevenue:  last.BaselineRevenue,
		UpsellRevenue:    last.UpsellRevenue,
		TotalRevenue:     last.TotalRevenue,
		UpsellPercentage: Share(last.UpsellRevenue, last.TotalRevenue),
		MonthlyData:      monthly,
	}, nil
}

// Round rounds half away from zero to the nearest whole customer.
func Round(v float64) int {
	return int(math.Round(v))
}

// Share returns part as a percentage of total, or 0 when total is 0.
func Share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Cumulative sums revenue across every period of res. Result itself keeps
// final-period figures; this is the running-total view alongside it.
func Cumulative(res model.Result) model.Totals {
	t := model.Totals{Periods: len(res.MonthlyData)}
	for _, m := range res.MonthlyData {
		t.BaselineRevenue += m.BaselineRevenue
		t.UpsellRevenue += m.UpsellRevenue
		t.TotalRevenue += m.TotalRevenue
	}
	return t
}

// Sample thins long series for charting: above 24 periods every third
// record is kept, above 12 every second, otherwise all of them.
func Sample(records []model.MonthlyRecord) []model.MonthlyRecord {
	step := 1
	switch {
	case len(records) > 24:
		step = 3
	case len(records) > 12:
		step = 2
	}

	out := make([]model.MonthlyRecord, 0, (len(records)+step-1)/step)
	for i := 0; i < len(records); i += step {
		out = append(out, records[i])
	}
	return out
}
