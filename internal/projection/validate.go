package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/upsell/internal/model"
)

// MaxTimeframe is the longest projection, in periods, accepted by Validate.
const MaxTimeframe = 60

// maxCustomers keeps every customer count exactly representable as a float64.
const maxCustomers = 1 << 53

// ErrInvalidInput is the only error kind the engine produces.
var ErrInvalidInput = errors.New("projection: invalid input")

// InputError names the field that failed validation. It matches
// ErrInvalidInput under errors.Is.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Is reports ErrInvalidInput as the error kind.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validate rejects inputs the engine cannot project. It never adjusts values.
func Validate(in model.Input) error {
	if in.CurrentCustomers < 0 {
		return &InputError{Field: "currentCustomers", Value: float64(in.CurrentCustomers), Reason: "must not be negative"}
	}
	if in.Timeframe < 1 {
		return &InputError{Field: "timeframe", Value: float64(in.Timeframe), Reason: "must be at least 1"}
	}
	if in.Timeframe > MaxTimeframe {
		return &InputError{Field: "timeframe", Value: float64(in.Timeframe), Reason: fmt.Sprintf("must be at most %d", MaxTimeframe)}
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"averageRevenue", in.AverageRevenue},
		{"upsellAverageValue", in.UpsellAverageValue},
	}
	for _, a := range amounts {
		if err := checkFinite(a.field, a.value); err != nil {
			return err
		}
		if a.value < 0 {
			return &InputError{Field: a.field, Value: a.value, Reason: "must not be negative"}
		}
	}

	rates := []struct {
		field string
		value float64
	}{
		{"upsellConversionRate", in.UpsellConversionRate},
		{"growthRate", in.GrowthRate},
	}
	for _, r := range rates {
		if err := checkFinite(r.field, r.value); err != nil {
			return err
		}
		if r.value < 0 || r.value > 100 {
			return &InputError{Field: r.field, Value: r.value, Reason: "must be between 0 and 100"}
		}
	}

	// x[n+1] <= g*x[n] + 0.5, so g^T * (c + T/2) bounds the final count.
	bound := math.Pow(1+in.GrowthRate/100, float64(in.Timeframe)) *
		(float64(in.CurrentCustomers) + float64(in.Timeframe)/2)
	if bound > maxCustomers {
		return &InputError{Field: "currentCustomers", Value: float64(in.CurrentCustomers), Reason: "projected customer count is out of range"}
	}

	// Revenue per period and its sum across all periods must stay finite.
	perCustomer := in.AverageRevenue + in.UpsellConversionRate/100*in.UpsellAverageValue
	if bound*perCustomer*float64(in.Timeframe) > math.MaxFloat64 {
		return &InputError{Field: "averageRevenue", Value: in.AverageRevenue, Reason: "projected revenue is out of range"}
	}

	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	return nil
}
