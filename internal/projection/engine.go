package projection

import "github.com/shopspring/decimal"

// Snapshot is one projected year-end state. Snapshots are ephemeral: they
// are produced fresh on every run and never persisted as source of truth.
type Snapshot struct {
	Year          int             `json:"year"`
	DebtRemaining decimal.Decimal `json:"debt_remaining"`
	Savings       decimal.Decimal `json:"savings"`
	NetWorth      decimal.Decimal `json:"net_worth"`
}

// Result bundles the yearly snapshots with the order debts were paid off.
type Result struct {
	Snapshots []Snapshot `json:"snapshots"`
	Payoffs   []Payoff   `json:"payoffs"`
}

// Engine drives the payoff simulator and a parallel savings-growth model
// across the configured horizon.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration and returns an engine. A bad
// configuration fails here, before any simulation starts.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Run simulates HorizonYears of monthly debt payments and savings growth,
// starting from the given debts and liquid savings. Each month the savings
// side applies
//
//	savings = savings × (1 + growthRate) + contribution
//
// and the debt side advances the payoff simulator. One snapshot is emitted
// per year boundary; debt remaining is already clamped at zero per debt, so
// net worth never benefits from a negative debt value.
func (e *Engine) Run(debts []Debt, savings decimal.Decimal) Result {
	sim := NewSimulator(debts, e.cfg.Strategy)
	growth := one.Add(e.cfg.MonthlySavingsGrowthRate)

	months := e.cfg.HorizonYears * 12
	snapshots := make([]Snapshot, 0, e.cfg.HorizonYears)

	for month := 1; month <= months; month++ {
		sim.Step()
		savings = savings.Mul(growth).Add(e.cfg.MonthlySavingsContribution)

		if month%12 == 0 {
			debtRemaining := sim.TotalRemaining()
			snapshots = append(snapshots, Snapshot{
				Year:          month / 12,
				DebtRemaining: debtRemaining,
				Savings:       savings,
				NetWorth:      savings.Sub(debtRemaining),
			})
		}
	}

	return Result{Snapshots: snapshots, Payoffs: sim.Payoffs()}
}
