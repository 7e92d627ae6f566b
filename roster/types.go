// Package roster manages the employee file: persons, their roles, and the
// fixed periodic discounts deducted from their receipts.
package roster

import "github.com/shopspring/decimal"

// Person is an employee. Role is a free-text category key resolved against
// the liquidation config table.
type Person struct {
	ID   string
	Name string
	Role string
}

// Discount is a fixed periodic deduction tied to a person. Amount is
// non-negative. Discounts are deleted automatically when their owner is.
type Discount struct {
	ID       string
	PersonID string
	Label    string
	Amount   decimal.Decimal
}
