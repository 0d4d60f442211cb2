// Package model holds the plain data types shared across upsell packages.
package model

// Input holds the business metrics a projection is computed from.
type Input struct {
	CurrentCustomers     int     `json:"currentCustomers" yaml:"current_customers" toml:"current_customers"`
	AverageRevenue       float64 `json:"averageRevenue" yaml:"average_revenue" toml:"average_revenue"`
	UpsellConversionRate float64 `json:"upsellConversionRate" yaml:"upsell_conversion_rate" toml:"upsell_conversion_rate"` // percent, 0-100
	UpsellAverageValue   float64 `json:"upsellAverageValue" yaml:"upsell_average_value" toml:"upsell_average_value"`
	GrowthRate           float64 `json:"growthRate" yaml:"growth_rate" toml:"growth_rate"` // percent per period, 0-100
	Timeframe            int     `json:"timeframe" yaml:"timeframe" toml:"timeframe"`       // periods (months)
}

// MonthlyRecord is the projected state of a single period.
type MonthlyRecord struct {
	Period          int     `json:"month"`
	Customers       int     `json:"customers"`
	BaselineRevenue float64 `json:"baselineRevenue"`
	UpsellRevenue   float64 `json:"upsellRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// Result is the output of one projection. The revenue fields mirror the
// final period, they are not sums across periods.
type Result struct {
	BaselineRevenue  float64         `json:"baselineRevenue"`
	UpsellRevenue    float64         `json:"upsellRevenue"`
	TotalRevenue     float64         `json:"totalRevenue"`
	UpsellPercentage float64         `json:"upsellPercentage"`
	MonthlyData      []MonthlyRecord `json:"monthlyData"`
}

// Final returns the last projected period, or false for an empty result.
func (r Result) Final() (MonthlyRecord, bool) {
	if len(r.MonthlyData) == 0 {
		return MonthlyRecord{}, false
	}
	return r.MonthlyData[len(r.MonthlyData)-1], true
}

// Totals holds revenue summed over every projected period.
type Totals struct {
	Periods         int     `json:"periods"`
	BaselineRevenue float64 `json:"baselineRevenue"`
	UpsellRevenue   float64 `json:"upsellRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// DefaultInput returns the calculator's starting values.
func DefaultInput() Input {
	return Input{
		CurrentCustomers:     1000,
		AverageRevenue:       5000,
		UpsellConversionRate: 15,
		UpsellAverageValue:   2000,
		GrowthRate:           5,
		Timeframe:            12,
	}
}
