/*
Package liquidation computes the proportional distribution of a monthly
surplus pool across employees, weighted by confirmed worked hours and
role-based coefficient parameters.

PURPOSE:
  Heterogeneous per-role hours are converted into a single comparable
  coefficient per employee, coefficients are summed across the cohort, and
  the pool is apportioned proportionally with deterministic two-decimal
  rounding.

KEY CONCEPTS IN THIS PACKAGE:
  - CategoryConfig: Per-role coefficient parameters (config.go)
  - ConfigStore: Role -> config lookup with a protected default (config.go)
  - ComputeCoefficient / Distribute: The apportionment math (engine.go)

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal end to end, no float drift in money math
  2. Resolution is total: every role resolves, unknown roles fall back
     to the "default" entry, which always exists and cannot be deleted
  3. Reference hours are validated at config-write time, so the engine
     never divides by zero on data that went through a store

SEE ALSO:
  - engine.go: Coefficient formula and pool distribution
  - payrun: Orchestrates attendance aggregation into distribution entries
*/
package liquidation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultRole is the reserved fallback key in the config table. It supplies
// the configuration for any role without an explicit entry and is protected
// from deletion.
const DefaultRole = "default"

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrNonPositivePool is returned when a distribution is requested for a
	// zero or negative pool amount.
	ErrNonPositivePool = errors.New("pool amount must be positive")

	// ErrInvalidReferenceHours is returned when a config carries zero or
	// negative monthly reference hours.
	ErrInvalidReferenceHours = errors.New("monthly reference hours must be positive")

	// ErrDefaultProtected is returned when deleting the default config entry.
	ErrDefaultProtected = errors.New("default category config cannot be deleted")
)

// =============================================================================
// CATEGORY CONFIG - Coefficient formula parameters for a role
// =============================================================================

// CategoryConfig holds the coefficient parameters for one role.
type CategoryConfig struct {
	// MonthlyHoursRef is the hours-per-month baseline a full schedule
	// represents. Worked hours are normalized against it.
	MonthlyHoursRef decimal.Decimal

	// CoeffFullMonth is the coefficient earned by working exactly
	// MonthlyHoursRef hours.
	CoeffFullMonth decimal.Decimal

	// FixedCoeff is an additive role bonus, folded in before the
	// percentage multiplier. Zero when unset.
	FixedCoeff decimal.Decimal

	// PlusPercent is a multiplicative role incentive expressed as a
	// fraction (0.05 = 5%). Zero when unset.
	PlusPercent decimal.Decimal
}

// Validate checks the invariants enforced at config-write time.
func (c CategoryConfig) Validate() error {
	if !c.MonthlyHoursRef.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidReferenceHours, c.MonthlyHoursRef)
	}
	return nil
}

// =============================================================================
// CONFIG STORE - Role to config lookup table
// =============================================================================

// ConfigStore owns the role -> CategoryConfig table.
//
// CONTRACT:
//   - A DefaultRole entry always exists (implementations seed one).
//   - GetConfig never fails on an unknown role: it returns the default.
//   - SetConfig validates the config before writing.
//   - DeleteConfig refuses DefaultRole and reports false for unknown roles.
type ConfigStore interface {
	// GetConfig returns the config for a role, falling back to DefaultRole.
	GetConfig(ctx context.Context, role string) (CategoryConfig, error)

	// GetAllConfigs returns every entry keyed by role, DefaultRole included.
	GetAllConfigs(ctx context.Context) (map[string]CategoryConfig, error)

	// SetConfig creates or replaces the entry for a role.
	SetConfig(ctx context.Context, role string, cfg CategoryConfig) error

	// DeleteConfig removes a role's entry. Returns ErrDefaultProtected for
	// DefaultRole and (false, nil) when the role has no entry.
	DeleteConfig(ctx context.Context, role string) (bool, error)

	// ListConfiguredRoles returns explicitly configured roles, excluding
	// DefaultRole.
	ListConfiguredRoles(ctx context.Context) ([]string, error)
}
