// Package projection simulates debt payoff and savings growth over a
// multi-year horizon, producing one snapshot per simulated year.
//
// The simulation is a pure function of its inputs: it always restarts from
// the current derived state and is never resumed from a previous run.
package projection

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Strategy selects the debt payoff ordering.
type Strategy string

const (
	// StrategySnowball pays the smallest remaining balance first.
	StrategySnowball Strategy = "snowball"
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche Strategy = "avalanche"
)

// MaxHorizonYears bounds the simulation length. Money amounts use
// arbitrary-precision decimals, so the bound exists to keep run time and
// snapshot counts sane rather than to avoid overflow.
const MaxHorizonYears = 100

// Configuration validation errors. The engine fails fast on a nonsensical
// configuration instead of silently clamping it.
var (
	ErrHorizonNotPositive = errors.New("projection horizon must be at least one year")
	ErrHorizonTooLong     = fmt.Errorf("projection horizon exceeds %d years", MaxHorizonYears)
	ErrGrowthRateTooLow   = errors.New("monthly savings growth rate must be greater than -100%")
	ErrUnknownStrategy    = errors.New("unknown payoff strategy")
)

// Config holds the named configuration inputs for a projection run.
// MonthlySavingsGrowthRate is a monthly fraction (0.004 ≈ 4.9%/year), not
// an annual percentage. Debt interest rates live on the debts themselves
// and are annual percentages.
type Config struct {
	HorizonYears               int             `json:"horizon_years"`
	MonthlySavingsGrowthRate   decimal.Decimal `json:"monthly_savings_growth_rate"`
	MonthlySavingsContribution decimal.Decimal `json:"monthly_savings_contribution"`
	Strategy                   Strategy        `json:"strategy"`
}

// Validate checks the configuration before any simulation starts.
func (c Config) Validate() error {
	if c.HorizonYears <= 0 {
		return ErrHorizonNotPositive
	}
	if c.HorizonYears > MaxHorizonYears {
		return ErrHorizonTooLong
	}
	if c.MonthlySavingsGrowthRate.LessThan(decimal.NewFromInt(-1)) {
		return ErrGrowthRateTooLow
	}
	switch c.Strategy {
	case StrategySnowball, StrategyAvalanche:
	default:
		return ErrUnknownStrategy
	}
	return nil
}
