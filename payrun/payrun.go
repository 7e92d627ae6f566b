/*
Package payrun orchestrates the two period-end flows: the liquidation run
(distribute a surplus pool over confirmed hours) and the receipt run (the
same distribution followed by per-person receipt generation).

FLOW:
  confirmed attendance -> hours per person -> category config per role
  -> Distribute(pool) -> lines enriched with person data
  -> (receipt run only) Generate(gross, discounts) per person

Persons with no confirmed hours are excluded. Line order follows roster
order of the persons that do have hours, and stays stable through both runs.
*/
package payrun

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/receipt"
	"github.com/nomina/payroll-engine/roster"
)

// Runner wires the stores the runs read from. It holds no state of its own;
// every run re-reads the stores.
type Runner struct {
	Attendance attendance.Store
	Roster     roster.Store
	Configs    liquidation.ConfigStore
}

func NewRunner(att attendance.Store, ros roster.Store, cfg liquidation.ConfigStore) *Runner {
	return &Runner{Attendance: att, Roster: ros, Configs: cfg}
}

// =============================================================================
// LIQUIDATION RUN
// =============================================================================

// LiquidationLine is a distribution line enriched with person data for
// presentation.
type LiquidationLine struct {
	liquidation.Line
	PersonName string
	PersonRole string
	Hours      decimal.Decimal
}

// LiquidationResult is the outcome of one liquidation run.
type LiquidationResult struct {
	Pool       decimal.Decimal
	Lines      []LiquidationLine
	TotalHours decimal.Decimal
	TotalGross decimal.Decimal
}

// Liquidate distributes the pool across everyone with confirmed hours.
func (r *Runner) Liquidate(ctx context.Context, pool decimal.Decimal) (*LiquidationResult, error) {
	persons, hours, err := r.confirmedHours(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]liquidation.Entry, 0, len(persons))
	for _, p := range persons {
		cfg, err := r.Configs.GetConfig(ctx, p.Role)
		if err != nil {
			return nil, fmt.Errorf("resolve config for role %q: %w", p.Role, err)
		}
		entries = append(entries, liquidation.Entry{
			PersonID: p.ID,
			Hours:    hours[p.ID],
			Config:   cfg,
		})
	}

	lines, err := liquidation.Distribute(pool, entries)
	if err != nil {
		return nil, err
	}

	result := &LiquidationResult{Pool: pool, Lines: make([]LiquidationLine, len(lines))}
	for i, line := range lines {
		p := persons[i]
		result.Lines[i] = LiquidationLine{
			Line:       line,
			PersonName: p.Name,
			PersonRole: p.Role,
			Hours:      hours[p.ID],
		}
		result.TotalHours = result.TotalHours.Add(hours[p.ID])
		result.TotalGross = result.TotalGross.Add(line.Gross)
	}
	return result, nil
}

// confirmedHours aggregates confirmed attendance into hours per person and
// returns the roster-ordered persons that have any.
func (r *Runner) confirmedHours(ctx context.Context) ([]roster.Person, map[string]decimal.Decimal, error) {
	confirmed, err := r.Attendance.ListByStatus(ctx, attendance.StatusConfirmed)
	if err != nil {
		return nil, nil, fmt.Errorf("list confirmed attendance: %w", err)
	}

	hours := make(map[string]decimal.Decimal)
	for _, rec := range confirmed {
		hours[rec.PersonID] = hours[rec.PersonID].Add(rec.Hours)
	}

	all, err := r.Roster.GetAllPersons(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list persons: %w", err)
	}

	persons := make([]roster.Person, 0, len(hours))
	for _, p := range all {
		if _, ok := hours[p.ID]; ok {
			persons = append(persons, p)
		}
	}
	return persons, hours, nil
}

// =============================================================================
// RECEIPT RUN
// =============================================================================

// ReceiptEntry is a generated receipt enriched with person data.
type ReceiptEntry struct {
	receipt.Receipt
	PersonName string
	PersonRole string
}

// ReceiptRunResult is the outcome of one receipt run.
type ReceiptRunResult struct {
	Period         string
	Receipts       []ReceiptEntry
	TotalGross     decimal.Decimal
	TotalDiscounts decimal.Decimal
	TotalNet       decimal.Decimal
}

// GenerateReceipts runs a liquidation and turns each line into a receipt
// net of the person's stored discounts.
func (r *Runner) GenerateReceipts(ctx context.Context, pool decimal.Decimal, period string) (*ReceiptRunResult, error) {
	liq, err := r.Liquidate(ctx, pool)
	if err != nil {
		return nil, err
	}

	result := &ReceiptRunResult{Period: period, Receipts: make([]ReceiptEntry, len(liq.Lines))}
	for i, line := range liq.Lines {
		discounts, err := r.Roster.GetDiscounts(ctx, line.PersonID)
		if err != nil {
			return nil, fmt.Errorf("discounts for %s: %w", line.PersonID, err)
		}

		lines := make([]receipt.DiscountLine, len(discounts))
		for j, d := range discounts {
			lines[j] = receipt.DiscountLine{Label: d.Label, Amount: d.Amount}
			result.TotalDiscounts = result.TotalDiscounts.Add(d.Amount)
		}

		rec := receipt.Generate(line.PersonID, period, line.Gross, lines)
		result.Receipts[i] = ReceiptEntry{
			Receipt:    rec,
			PersonName: line.PersonName,
			PersonRole: line.PersonRole,
		}
		result.TotalGross = result.TotalGross.Add(rec.Gross)
		result.TotalNet = result.TotalNet.Add(rec.Net)
	}
	return result, nil
}
