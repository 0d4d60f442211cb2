package config

import "testing"

func TestLookupBound(t *testing.T) {
	b, ok := LookupBound("growthRate")
	if !ok {
		t.Fatal("LookupBound returned !ok for growthRate")
	}
	if b.Step != 0.5 || b.Max != 20 {
		t.Fatalf("growthRate bound = %+v", b)
	}
	if _, ok := LookupBound("churnRate"); ok {
		t.Fatal("LookupBound returned ok for unknown field")
	}
}

func TestBound_TimeframeInputExceedsSlider(t *testing.T) {
	b, _ := LookupBound("timeframe")
	if b.Max != 36 || b.InputMax != 60 {
		t.Fatalf("timeframe bound = %+v, want slider 36 input 60", b)
	}
	if got := b.Clamp(48); got != 48 {
		t.Fatalf("Clamp(48) = %v, want 48", got)
	}
	if got := b.Clamp(90); got != 60 {
		t.Fatalf("Clamp(90) = %v, want 60", got)
	}
	if got := b.Nudge(36, 1); got != 36 {
		t.Fatalf("Nudge(36, 1) = %v, want slider max 36", got)
	}
	if got := b.Nudge(48, 1); got != 49 {
		t.Fatalf("Nudge(48, 1) = %v, want 49", got)
	}
	if got := b.Nudge(48, -1); got != 47 {
		t.Fatalf("Nudge(48, -1) = %v, want 47", got)
	}
	if got := b.Nudge(60, 1); got != 60 {
		t.Fatalf("Nudge(60, 1) = %v, want input max 60", got)
	}
}

func TestBound_Nudge(t *testing.T) {
	tests := []struct {
		field string
		v     float64
		n     int
		want  float64
	}{
		{"currentCustomers", 1000, 1, 1100},
		{"currentCustomers", 1040, 0, 1000},
		{"currentCustomers", 100, -1, 100},
		{"growthRate", 5, 1, 5.5},
		{"growthRate", 19.5, 3, 20},
		{"averageRevenue", 5000, -2, 4000},
	}
	for _, tc := range tests {
		b, ok := LookupBound(tc.field)
		if !ok {
			t.Fatalf("missing bound %s", tc.field)
		}
		if got := b.Nudge(tc.v, tc.n); got != tc.want {
			t.Fatalf("%s Nudge(%v, %d) = %v, want %v", tc.field, tc.v, tc.n, got, tc.want)
		}
	}
}

func TestInputBounds_DefaultsInRange(t *testing.T) {
	d := DefaultConfig().Defaults
	values := map[string]float64{
		"currentCustomers":     float64(d.CurrentCustomers),
		"averageRevenue":       d.AverageRevenue,
		"upsellConversionRate": d.UpsellConversionRate,
		"upsellAverageValue":   d.UpsellAverageValue,
		"growthRate":           d.GrowthRate,
		"timeframe":            float64(d.Timeframe),
	}
	for _, b := range InputBounds {
		v, ok := values[b.Field]
		if !ok {
			t.Fatalf("bound %s has no matching input field", b.Field)
		}
		if v < b.Min || v > b.Max {
			t.Fatalf("default %s = %v outside [%v, %v]", b.Field, v, b.Min, b.Max)
		}
	}
}
