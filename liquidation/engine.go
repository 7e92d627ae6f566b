/*
engine.go - Coefficient formula and pool distribution

COEFFICIENT FORMULA (per employee):
  hourFraction = hours / monthlyHoursRef
  hourCoeff    = coeffFullMonth * hourFraction
  base         = hourCoeff + fixedCoeff
  coefficient  = base * (1 + plusPercent)

  The order is fixed: the linear hours term first, then the additive role
  bonus, then the percentage multiplier, so fixed bonuses scale with the
  percentage too.

DISTRIBUTION:
  Each entry's coefficient is computed independently, coefficients are
  summed, and every entry receives pool * coefficient / total, rounded to
  two decimals per entry. The rounded amounts may drift from the pool by a
  few cents; that drift is accepted, there is no largest-remainder
  reallocation. Output order matches input order.

DEGENERATE CASE:
  A zero coefficient total (empty cohort, or everyone at zero) yields zero
  percentages and zero gross amounts. This is policy, not an error.
*/
package liquidation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is one employee's input to a distribution.
type Entry struct {
	PersonID string
	Hours    decimal.Decimal
	Config   CategoryConfig
}

// Line is one employee's share of a distributed pool. Lines are transient
// computation output; they are not persisted.
type Line struct {
	PersonID   string
	CoeffFinal decimal.Decimal
	// Percentage is the share of the pool as a fraction of 1.
	Percentage decimal.Decimal
	// Gross is the pre-discount monetary share, rounded to two decimals.
	Gross decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ComputeCoefficient applies the coefficient formula to worked hours.
// Configs with non-positive reference hours are rejected here as well as at
// the store boundary, so a raw config cannot smuggle in a division by zero.
func ComputeCoefficient(hours decimal.Decimal, cfg CategoryConfig) (decimal.Decimal, error) {
	if err := cfg.Validate(); err != nil {
		return decimal.Zero, err
	}

	hourCoeff := cfg.CoeffFullMonth.Mul(hours.Div(cfg.MonthlyHoursRef))
	base := hourCoeff.Add(cfg.FixedCoeff)
	return base.Mul(one.Add(cfg.PlusPercent)), nil
}

// Distribute apportions a pool amount across entries in proportion to their
// coefficients. The pool must be positive; entries may be empty.
func Distribute(pool decimal.Decimal, entries []Entry) ([]Line, error) {
	if !pool.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrNonPositivePool, pool)
	}

	lines := make([]Line, 0, len(entries))
	total := decimal.Zero
	for _, e := range entries {
		coeff, err := ComputeCoefficient(e.Hours, e.Config)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.PersonID, err)
		}
		lines = append(lines, Line{PersonID: e.PersonID, CoeffFinal: coeff})
		total = total.Add(coeff)
	}

	if total.IsZero() {
		// Defined-zero policy: nothing to apportion, every share is zero.
		for i := range lines {
			lines[i].Percentage = decimal.Zero
			lines[i].Gross = decimal.Zero
		}
		return lines, nil
	}

	for i := range lines {
		lines[i].Percentage = lines[i].CoeffFinal.Div(total)
		lines[i].Gross = pool.Mul(lines[i].CoeffFinal).Div(total).Round(2)
	}
	return lines, nil
}
