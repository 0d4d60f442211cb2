package cmd

import (
	"testing"

	"github.com/theirongolddev/upsell/internal/config"
	"github.com/theirongolddev/upsell/internal/model"

	"github.com/spf13/cobra"
)

func newInputCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	pf := c.PersistentFlags()
	pf.IntVarP(&flagCustomers, "customers", "c", 0, "")
	pf.Float64VarP(&flagRevenue, "revenue", "r", 0, "")
	pf.Float64Var(&flagConversion, "conversion", 0, "")
	pf.Float64VarP(&flagUpsellValue, "upsell-value", "u", 0, "")
	pf.Float64VarP(&flagGrowth, "growth", "g", 0, "")
	pf.IntVarP(&flagMonths, "months", "m", 0, "")
	pf.StringVarP(&flagScenario, "scenario", "s", "", "")
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return c
}

func TestResolveInput_DefaultsFromConfig(t *testing.T) {
	appCfg = config.DefaultConfig()
	appCfg.Defaults.GrowthRate = 2

	in, err := resolveInput(newInputCmd(t))
	if err != nil {
		t.Fatalf("resolveInput: %v", err)
	}
	if in != appCfg.Defaults {
		t.Fatalf("input = %+v, want %+v", in, appCfg.Defaults)
	}
}

func TestResolveInput_FlagsOverrideScenario(t *testing.T) {
	appCfg = config.DefaultConfig()

	in, err := resolveInput(newInputCmd(t, "--scenario", "aggressive", "--customers", "250", "-m", "6"))
	if err != nil {
		t.Fatalf("resolveInput: %v", err)
	}
	want := model.Input{
		CurrentCustomers:     250,
		AverageRevenue:       5000,
		UpsellConversionRate: 30,
		UpsellAverageValue:   5000,
		GrowthRate:           8.5,
		Timeframe:            6,
	}
	if in != want {
		t.Fatalf("input = %+v, want %+v", in, want)
	}
}

func TestResolveInput_ZeroFlagStillApplies(t *testing.T) {
	appCfg = config.DefaultConfig()

	in, err := resolveInput(newInputCmd(t, "--growth", "0"))
	if err != nil {
		t.Fatalf("resolveInput: %v", err)
	}
	if in.GrowthRate != 0 {
		t.Fatalf("GrowthRate = %v, want 0", in.GrowthRate)
	}
}

func TestResolveInput_UnknownScenario(t *testing.T) {
	appCfg = config.DefaultConfig()

	if _, err := resolveInput(newInputCmd(t, "--scenario", "nope")); err == nil {
		t.Fatal("expected error for unknown scenario")
	}
}

func TestBuildReport_InvalidInputKeepsInput(t *testing.T) {
	appCfg = config.DefaultConfig()

	rep, err := buildReport(newInputCmd(t, "--months", "0"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if rep.Input.Timeframe != 0 {
		t.Fatalf("Input.Timeframe = %d, want 0", rep.Input.Timeframe)
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	if len(got) != 3 || got[0] != "serve" || got[1] != "--addr" || got[2] != ":9000" {
		t.Fatalf("filterDetachArg = %v", got)
	}
}

func TestPIDRoundTrip(t *testing.T) {
	path := t.TempDir() + "/upsell.pid"
	if err := writePID(path, 4242); err != nil {
		t.Fatalf("writePID: %v", err)
	}
	pid, err := readPID(path)
	if err != nil {
		t.Fatalf("readPID: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("pid = %d, want 4242", pid)
	}
}
