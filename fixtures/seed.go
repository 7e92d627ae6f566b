/*
Package fixtures seeds a fresh store with the starter dataset: a small
roster, their fixed discounts, and the category coefficient table.

Seeding is idempotent: each collection is populated only when it is empty,
so restarting the process never duplicates or overwrites user data. The
protected "default" config entry is owned by the stores themselves and is
not touched here.
*/
package fixtures

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/roster"
)

type seedPerson struct {
	name      string
	role      string
	discounts []seedDiscount
}

type seedDiscount struct {
	label  string
	amount int64
}

var starterRoster = []seedPerson{
	{name: "Ivan Garcia", role: "Developer", discounts: []seedDiscount{
		{label: "Health Plan", amount: 1500},
		{label: "Union Dues", amount: 500},
	}},
	{name: "Abel Martinez", role: "Manager", discounts: []seedDiscount{
		{label: "Health Plan", amount: 2000},
		{label: "Personal Loan", amount: 3000},
	}},
	{name: "Maria Lopez", role: "Designer", discounts: []seedDiscount{
		{label: "Health Plan", amount: 1500},
	}},
}

func cfg(ref int64, full, fixed, plus string) liquidation.CategoryConfig {
	return liquidation.CategoryConfig{
		MonthlyHoursRef: decimal.NewFromInt(ref),
		CoeffFullMonth:  mustDecimal(full),
		FixedCoeff:      mustDecimal(fixed),
		PlusPercent:     mustDecimal(plus),
	}
}

var starterConfigs = map[string]liquidation.CategoryConfig{
	"Developer": cfg(160, "1.0", "0.1", "0.05"),
	"Manager":   cfg(160, "1.5", "0.2", "0.10"),
	"Designer":  cfg(160, "1.0", "0.1", "0.03"),
}

// Seed populates empty stores with the starter dataset.
func Seed(ctx context.Context, ros roster.Store, configs liquidation.ConfigStore) error {
	persons, err := ros.GetAllPersons(ctx)
	if err != nil {
		return fmt.Errorf("seed: list persons: %w", err)
	}
	if len(persons) == 0 {
		for _, sp := range starterRoster {
			p, err := ros.AddPerson(ctx, sp.name, sp.role)
			if err != nil {
				return fmt.Errorf("seed: add person %q: %w", sp.name, err)
			}
			for _, sd := range sp.discounts {
				_, err := ros.AddDiscount(ctx, roster.Discount{
					PersonID: p.ID,
					Label:    sd.label,
					Amount:   decimal.NewFromInt(sd.amount),
				})
				if err != nil {
					return fmt.Errorf("seed: add discount %q: %w", sd.label, err)
				}
			}
		}
	}

	roles, err := configs.ListConfiguredRoles(ctx)
	if err != nil {
		return fmt.Errorf("seed: list roles: %w", err)
	}
	if len(roles) == 0 {
		for role, c := range starterConfigs {
			if err := configs.SetConfig(ctx, role, c); err != nil {
				return fmt.Errorf("seed: set config %q: %w", role, err)
			}
		}
	}
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
