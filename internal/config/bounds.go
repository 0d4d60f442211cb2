package config

import "math"

// Bound describes the adjustable range of one input field.
type Bound struct {
	Field    string // JSON name of the model.Input field
	Label    string
	Min      float64
	Max      float64 // slider maximum
	InputMax float64 // typed values may go up to here
	Step     float64
	Currency bool
	Percent  bool
}

// InputBounds lists the calculator inputs in display order.
var InputBounds = []Bound{
	{Field: "currentCustomers", Label: "Current Customers", Min: 100, Max: 10000, InputMax: 10000, Step: 100},
	{Field: "averageRevenue", Label: "Average Revenue per Customer", Min: 1000, Max: 50000, InputMax: 50000, Step: 500, Currency: true},
	{Field: "upsellConversionRate", Label: "Upsell Conversion Rate", Min: 1, Max: 50, InputMax: 50, Step: 1, Percent: true},
	{Field: "upsellAverageValue", Label: "Average Upsell Value", Min: 500, Max: 25000, InputMax: 25000, Step: 500, Currency: true},
	{Field: "growthRate", Label: "Monthly Growth Rate", Min: 0, Max: 20, InputMax: 20, Step: 0.5, Percent: true},
	{Field: "timeframe", Label: "Projection Timeframe (months)", Min: 1, Max: 36, InputMax: 60, Step: 1},
}

// LookupBound returns the bound for a field by its JSON name.
func LookupBound(field string) (Bound, bool) {
	for _, b := range InputBounds {
		if b.Field == field {
			return b, true
		}
	}
	return Bound{}, false
}

// Clamp limits v to [Min, InputMax].
func (b Bound) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.InputMax, v))
}

// Nudge moves v by n steps, snapping to the step grid. Steps stay within
// the slider range unless v was typed past Max, in which case they may go
// up to InputMax.
func (b Bound) Nudge(v float64, n int) float64 {
	upper := b.Max
	if v > b.Max {
		upper = b.Clamp(v)
		if n > 0 {
			upper = b.InputMax
		}
	}
	if b.Step <= 0 {
		return math.Max(b.Min, math.Min(upper, v))
	}
	snapped := b.Min + math.Round((v-b.Min)/b.Step)*b.Step
	next := snapped + float64(n)*b.Step
	return math.Max(b.Min, math.Min(upper, next))
}
