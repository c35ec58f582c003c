package projection_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"debttrack/internal/projection"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func simDebt(id string, remaining, rate, minimum string) projection.Debt {
	return projection.Debt{
		ID:             id,
		Creditor:       "Creditor " + id,
		Remaining:      dec(remaining),
		InterestRate:   dec(rate),
		MinimumPayment: dec(minimum),
	}
}

func runToCompletion(t *testing.T, sim *projection.Simulator, maxMonths int) {
	t.Helper()
	for !sim.Done() {
		if sim.Month() >= maxMonths {
			t.Fatalf("simulation did not finish within %d months, %s still outstanding",
				maxMonths, sim.TotalRemaining())
		}
		sim.Step()
	}
}

func TestSimulatorSnowball(t *testing.T) {
	t.Run("freed_minimum_rolls_to_next_debt", func(t *testing.T) {
		// Debt A: 500 at 0% with a 50 minimum pays off at month 10.
		// Debt B: 2000 at 0% with a 100 minimum has 1000 left by then,
		// then receives 150 a month and clears at month 17.
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-b", "2000", "0", "100"),
			simDebt("debt-a", "500", "0", "50"),
		}, projection.StrategySnowball)

		runToCompletion(t, sim, 240)

		payoffs := sim.Payoffs()
		if len(payoffs) != 2 {
			t.Fatalf("expected 2 payoffs, got %d", len(payoffs))
		}
		if payoffs[0].DebtID != "debt-a" || payoffs[0].Month != 10 {
			t.Errorf("expected debt-a paid at month 10, got %s at month %d", payoffs[0].DebtID, payoffs[0].Month)
		}
		if payoffs[1].DebtID != "debt-b" || payoffs[1].Month != 17 {
			t.Errorf("expected debt-b paid at month 17, got %s at month %d", payoffs[1].DebtID, payoffs[1].Month)
		}
	})

	t.Run("interest_accrues_before_payment", func(t *testing.T) {
		// 100 at 12% annual accrues 1% monthly: 101 - 50 = 51, then
		// 51.51 - 50 = 1.51, cleared on the third payment.
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-a", "100", "12", "50"),
		}, projection.StrategySnowball)

		sim.Step()
		if !sim.TotalRemaining().Equal(dec("51")) {
			t.Errorf("expected 51 after first month, got %s", sim.TotalRemaining())
		}

		sim.Step()
		if !sim.TotalRemaining().Equal(dec("1.51")) {
			t.Errorf("expected 1.51 after second month, got %s", sim.TotalRemaining())
		}

		sim.Step()
		if !sim.Done() {
			t.Errorf("expected payoff on third month, %s remaining", sim.TotalRemaining())
		}
	})

	t.Run("ties_break_by_debt_id", func(t *testing.T) {
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-z", "1000", "10", "50"),
			simDebt("debt-a", "1000", "10", "50"),
		}, projection.StrategySnowball)

		order := sim.Order()
		if order[0].ID != "debt-a" || order[1].ID != "debt-z" {
			t.Errorf("expected tie broken by ID ascending, got %s then %s", order[0].ID, order[1].ID)
		}
	})

	t.Run("paid_debts_are_excluded_at_construction", func(t *testing.T) {
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-paid", "0", "5", "50"),
			simDebt("debt-open", "300", "5", "50"),
		}, projection.StrategySnowball)

		order := sim.Order()
		if len(order) != 1 || order[0].ID != "debt-open" {
			t.Errorf("expected only the open debt, got %v", order)
		}
	})

	t.Run("identical_inputs_produce_identical_runs", func(t *testing.T) {
		debts := []projection.Debt{
			simDebt("debt-b", "800", "18", "40"),
			simDebt("debt-a", "800", "18", "40"),
			simDebt("debt-c", "1500", "6", "75"),
		}

		first := projection.NewSimulator(debts, projection.StrategySnowball)
		second := projection.NewSimulator(debts, projection.StrategySnowball)
		runToCompletion(t, first, 600)
		runToCompletion(t, second, 600)

		a, b := first.Payoffs(), second.Payoffs()
		if len(a) != len(b) {
			t.Fatalf("payoff counts differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("payoff %d differs: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}

func TestSimulatorAvalanche(t *testing.T) {
	t.Run("highest_rate_targeted_first", func(t *testing.T) {
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-small", "100", "5", "25"),
			simDebt("debt-costly", "5000", "24", "150"),
		}, projection.StrategyAvalanche)

		order := sim.Order()
		if order[0].ID != "debt-costly" {
			t.Errorf("expected highest-rate debt first, got %s", order[0].ID)
		}
	})

	t.Run("rate_ties_break_by_debt_id", func(t *testing.T) {
		sim := projection.NewSimulator([]projection.Debt{
			simDebt("debt-z", "500", "10", "50"),
			simDebt("debt-a", "900", "10", "50"),
		}, projection.StrategyAvalanche)

		order := sim.Order()
		if order[0].ID != "debt-a" {
			t.Errorf("expected tie broken by ID ascending, got %s first", order[0].ID)
		}
	})
}
