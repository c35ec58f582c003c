package projection_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"debttrack/internal/projection"
)

func TestEngineRun(t *testing.T) {
	t.Run("one_snapshot_per_year", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 3

		engine, err := projection.NewEngine(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := engine.Run(nil, decimal.NewFromInt(1000))
		if len(result.Snapshots) != 3 {
			t.Fatalf("expected 3 snapshots, got %d", len(result.Snapshots))
		}
		for i, snap := range result.Snapshots {
			if snap.Year != i+1 {
				t.Errorf("expected year %d, got %d", i+1, snap.Year)
			}
		}
	})

	t.Run("savings_compound_with_contribution", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 1
		cfg.MonthlySavingsGrowthRate = decimal.Zero
		cfg.MonthlySavingsContribution = decimal.NewFromInt(100)

		engine, err := projection.NewEngine(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := engine.Run(nil, decimal.NewFromInt(1000))
		snap := result.Snapshots[0]
		if !snap.Savings.Equal(dec("2200")) {
			t.Errorf("expected savings 2200 after 12 flat contributions, got %s", snap.Savings)
		}
		if !snap.NetWorth.Equal(dec("2200")) {
			t.Errorf("expected net worth 2200 with no debt, got %s", snap.NetWorth)
		}
	})

	t.Run("net_worth_subtracts_debt_remaining", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 1
		cfg.MonthlySavingsGrowthRate = decimal.Zero

		engine, err := projection.NewEngine(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 1200 at 0% paying 50 a month leaves 600 after a year.
		result := engine.Run([]projection.Debt{
			simDebt("debt-a", "1200", "0", "50"),
		}, decimal.NewFromInt(1000))

		snap := result.Snapshots[0]
		if !snap.DebtRemaining.Equal(dec("600")) {
			t.Errorf("expected 600 debt remaining, got %s", snap.DebtRemaining)
		}
		if !snap.NetWorth.Equal(dec("400")) {
			t.Errorf("expected net worth 400, got %s", snap.NetWorth)
		}
	})

	t.Run("payoffs_recorded_within_horizon", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 2

		engine, err := projection.NewEngine(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := engine.Run([]projection.Debt{
			simDebt("debt-a", "600", "0", "50"),
		}, decimal.Zero)

		if len(result.Payoffs) != 1 {
			t.Fatalf("expected 1 payoff, got %d", len(result.Payoffs))
		}
		if result.Payoffs[0].Month != 12 {
			t.Errorf("expected payoff at month 12, got %d", result.Payoffs[0].Month)
		}
		if !result.Snapshots[1].DebtRemaining.Equal(decimal.Zero) {
			t.Errorf("expected zero debt in year 2, got %s", result.Snapshots[1].DebtRemaining)
		}
	})
}
