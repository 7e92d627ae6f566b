package receipt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nomina/payroll-engine/receipt"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGenerate_NetIsGrossMinusDiscounts(t *testing.T) {
	// GIVEN: 2500 gross and two fixed deductions totaling 2000
	// WHEN: Generating a receipt
	// THEN: Net is 500 and the discount lines are carried through

	rec := receipt.Generate("person-1", "2025-03", dec("2500"), []receipt.DiscountLine{
		{Label: "Health Plan", Amount: dec("1500")},
		{Label: "Union Dues", Amount: dec("500")},
	})

	assert.Equal(t, "person-1", rec.PersonID)
	assert.Equal(t, "2025-03", rec.Period)
	assert.True(t, rec.Net.Equal(dec("500")), "got %s", rec.Net)
	assert.Len(t, rec.Discounts, 2)
	assert.NotEmpty(t, rec.ID)
}

func TestGenerate_NoDiscounts_NetEqualsGross(t *testing.T) {
	rec := receipt.Generate("person-1", "2025-03", dec("1234.56"), nil)
	assert.True(t, rec.Net.Equal(rec.Gross))
}

func TestGenerate_OverDeduction_NetGoesNegative(t *testing.T) {
	// GIVEN: Discounts exceeding the gross share
	// WHEN: Generating a receipt
	// THEN: Net is negative, not clamped to zero

	rec := receipt.Generate("person-1", "2025-03", dec("1000"), []receipt.DiscountLine{
		{Label: "Personal Loan", Amount: dec("3000")},
	})
	assert.True(t, rec.Net.Equal(dec("-2000")), "got %s", rec.Net)
}

func TestGenerate_FreshIDPerReceipt(t *testing.T) {
	a := receipt.Generate("person-1", "2025-03", dec("100"), nil)
	b := receipt.Generate("person-1", "2025-03", dec("100"), nil)
	assert.NotEqual(t, a.ID, b.ID)
}
