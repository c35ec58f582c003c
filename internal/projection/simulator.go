package projection

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Debt is the simulator's view of one outstanding debt, detached from
// storage. InterestRate is an annual percentage.
type Debt struct {
	ID             string          `json:"id"`
	Creditor       string          `json:"creditor"`
	Remaining      decimal.Decimal `json:"remaining"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// Payoff records a debt leaving the simulation.
type Payoff struct {
	DebtID   string `json:"debt_id"`
	Creditor string `json:"creditor"`
	Month    int    `json:"month"`
}

// Simulator advances an ordered list of debts through simulated months.
//
// The ordering is fixed at construction: smallest remaining balance first
// for snowball, highest interest rate first for avalanche, with ties always
// broken by debt ID ascending so identical inputs produce identical runs.
// The head of the list receives the snowball pool on top of its minimum
// payment; every other debt accrues interest and pays only its own minimum.
// When a debt reaches zero it is removed for good and its minimum payment
// joins the pool for all later months.
type Simulator struct {
	debts   []Debt
	pool    decimal.Decimal
	month   int
	payoffs []Payoff
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// NewSimulator builds a simulator over the debts that still carry a balance.
func NewSimulator(debts []Debt, strategy Strategy) *Simulator {
	active := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.Remaining.IsPositive() {
			active = append(active, d)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		switch strategy {
		case StrategyAvalanche:
			if !active[i].InterestRate.Equal(active[j].InterestRate) {
				return active[i].InterestRate.GreaterThan(active[j].InterestRate)
			}
		default: // snowball
			if !active[i].Remaining.Equal(active[j].Remaining) {
				return active[i].Remaining.LessThan(active[j].Remaining)
			}
		}
		return active[i].ID < active[j].ID
	})

	return &Simulator{debts: active, pool: decimal.Zero}
}

// Step advances the simulation by one month. Interest accrues before the
// payment lands, matching how a statement cycle bills.
func (s *Simulator) Step() {
	s.month++

	remaining := s.debts[:0]
	for i := range s.debts {
		d := s.debts[i]

		monthlyRate := d.InterestRate.Div(twelve).Div(hundred)
		d.Remaining = d.Remaining.Mul(one.Add(monthlyRate))

		payment := d.MinimumPayment
		if i == 0 {
			payment = payment.Add(s.pool)
		}
		d.Remaining = d.Remaining.Sub(payment)

		if d.Remaining.IsPositive() {
			remaining = append(remaining, d)
			continue
		}

		// Paid off: the freed minimum snowballs onto the next debt from
		// the following month onward. Removal is irreversible.
		s.pool = s.pool.Add(d.MinimumPayment)
		s.payoffs = append(s.payoffs, Payoff{DebtID: d.ID, Creditor: d.Creditor, Month: s.month})
	}
	s.debts = remaining
}

// Done reports whether every debt has been paid off.
func (s *Simulator) Done() bool {
	return len(s.debts) == 0
}

// Month returns the number of months simulated so far.
func (s *Simulator) Month() int {
	return s.month
}

// TotalRemaining sums the remaining balance across active debts.
func (s *Simulator) TotalRemaining() decimal.Decimal {
	total := decimal.Zero
	for i := range s.debts {
		total = total.Add(s.debts[i].Remaining)
	}
	return total
}

// Payoffs returns the debts paid off so far, in payoff order.
func (s *Simulator) Payoffs() []Payoff {
	return s.payoffs
}

// Order returns the current payoff targeting order of the active debts.
func (s *Simulator) Order() []Debt {
	return append([]Debt(nil), s.debts...)
}
