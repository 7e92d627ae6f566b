// Package receipt assembles pay receipts: a gross pool share net of the
// employee's fixed discounts.
package receipt

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountLine is one labeled deduction on a receipt.
type DiscountLine struct {
	Label  string
	Amount decimal.Decimal
}

// Receipt is a generated pay stub. Receipts are computation output; whether
// they are retained anywhere is the caller's concern.
type Receipt struct {
	ID        string
	PersonID  string
	Period    string
	Gross     decimal.Decimal
	Discounts []DiscountLine
	Net       decimal.Decimal
}

// Generate builds a receipt for one employee. Net is gross minus the sum of
// discount amounts and may be negative: over-deduction is surfaced, not
// clamped to zero. Pure function, no storage side effects.
func Generate(personID, period string, gross decimal.Decimal, discounts []DiscountLine) Receipt {
	total := decimal.Zero
	for _, d := range discounts {
		total = total.Add(d.Amount)
	}

	return Receipt{
		ID:        uuid.NewString(),
		PersonID:  personID,
		Period:    period,
		Gross:     gross,
		Discounts: discounts,
		Net:       gross.Sub(total),
	}
}
