package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/roster"
	"github.com/nomina/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(id string, status attendance.Status, hours string) attendance.Record {
	return attendance.Record{
		ID:        id,
		PersonID:  "person-1",
		CreatedBy: "person-1",
		Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "17:00",
		Hours:     dec(hours),
		Status:    status,
	}
}

// =============================================================================
// ATTENDANCE ROUND-TRIP TESTS
// =============================================================================

func TestSqlite_SaveAndGet_RoundTripsDecimals(t *testing.T) {
	// GIVEN: A record with fractional hours
	// WHEN: Persisting and re-reading it
	// THEN: Every field survives, hours exactly (TEXT storage, no float trip)

	ctx := context.Background()
	s := newTestStore(t)

	rec := record("r1", attendance.StatusPending, "7.67")
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec.PersonID, got.PersonID)
	assert.Equal(t, rec.StartTime, got.StartTime)
	assert.Equal(t, rec.EndTime, got.EndTime)
	assert.True(t, got.Hours.Equal(dec("7.67")), "got %s", got.Hours)
	assert.True(t, got.Date.Equal(rec.Date))
	assert.Equal(t, attendance.StatusPending, got.Status)
	assert.Empty(t, got.VerifiedBy)
}

func TestSqlite_Save_UpsertsByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, record("r1", attendance.StatusPending, "8")))

	updated := record("r1", attendance.StatusConfirmed, "8")
	updated.VerifiedBy = "auditor-1"
	require.NoError(t, s.Save(ctx, updated))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, attendance.StatusConfirmed, all[0].Status)
	assert.Equal(t, "auditor-1", all[0].VerifiedBy)
}

func TestSqlite_ListByStatus_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, record("b", attendance.StatusConfirmed, "8")))
	require.NoError(t, s.Save(ctx, record("a", attendance.StatusConfirmed, "4")))
	require.NoError(t, s.Save(ctx, record("p", attendance.StatusPending, "8")))

	confirmed, err := s.ListByStatus(ctx, attendance.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 2)
	assert.Equal(t, "b", confirmed[0].ID)
	assert.Equal(t, "a", confirmed[1].ID)
}

func TestSqlite_Get_UnknownID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

// =============================================================================
// ROSTER TESTS
// =============================================================================

func TestSqlite_PersonLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.AddPerson(ctx, "Alice", "Developer")
	require.NoError(t, err)

	got, err := s.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)

	updated, err := s.UpdatePerson(ctx, p.ID, "Alice B", "Manager")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Manager", updated.Role)

	ok, err := s.DeletePerson(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := s.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSqlite_DeletePerson_CascadesDiscounts(t *testing.T) {
	// GIVEN: A person with a discount, foreign_keys=on
	// WHEN: Deleting the person
	// THEN: The discount row is gone via the FK cascade

	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.AddPerson(ctx, "Alice", "Developer")
	require.NoError(t, err)
	_, err = s.AddDiscount(ctx, roster.Discount{PersonID: p.ID, Label: "Health Plan", Amount: dec("1500")})
	require.NoError(t, err)

	ok, err := s.DeletePerson(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	discounts, err := s.GetDiscounts(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, discounts)
}

func TestSqlite_DiscountAmount_RoundTrips(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.AddPerson(ctx, "Alice", "Developer")
	require.NoError(t, err)

	_, err = s.AddDiscount(ctx, roster.Discount{PersonID: p.ID, Label: "Health Plan", Amount: dec("1500.50")})
	require.NoError(t, err)

	discounts, err := s.GetDiscounts(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	assert.True(t, discounts[0].Amount.Equal(dec("1500.50")))
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestSqlite_DefaultConfig_SeededByMigration(t *testing.T) {
	// GIVEN: A freshly migrated database
	// WHEN: Resolving an unconfigured role
	// THEN: The seeded default row (160h, coefficient 1) applies

	s := newTestStore(t)

	cfg, err := s.GetConfig(context.Background(), "Astronaut")
	require.NoError(t, err)
	assert.True(t, cfg.MonthlyHoursRef.Equal(dec("160")))
	assert.True(t, cfg.CoeffFullMonth.Equal(dec("1")))
}

func TestSqlite_SetConfig_UpsertsAndResolves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cfg := liquidation.CategoryConfig{
		MonthlyHoursRef: dec("160"),
		CoeffFullMonth:  dec("1.5"),
		FixedCoeff:      dec("0.2"),
		PlusPercent:     dec("0.10"),
	}
	require.NoError(t, s.SetConfig(ctx, "Manager", cfg))

	got, err := s.GetConfig(ctx, "Manager")
	require.NoError(t, err)
	assert.True(t, got.CoeffFullMonth.Equal(dec("1.5")))
	assert.True(t, got.PlusPercent.Equal(dec("0.10")))

	cfg.PlusPercent = dec("0.15")
	require.NoError(t, s.SetConfig(ctx, "Manager", cfg))

	got, err = s.GetConfig(ctx, "Manager")
	require.NoError(t, err)
	assert.True(t, got.PlusPercent.Equal(dec("0.15")))
}

func TestSqlite_DeleteConfig_DefaultProtected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DeleteConfig(context.Background(), liquidation.DefaultRole)
	assert.ErrorIs(t, err, liquidation.ErrDefaultProtected)

	ok, err := s.DeleteConfig(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqlite_ListConfiguredRoles_ExcludesDefault(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SetConfig(ctx, "Developer", liquidation.CategoryConfig{
		MonthlyHoursRef: dec("160"),
		CoeffFullMonth:  dec("1"),
	}))
	require.NoError(t, s.SetConfig(ctx, "Manager", liquidation.CategoryConfig{
		MonthlyHoursRef: dec("160"),
		CoeffFullMonth:  dec("1.5"),
	}))

	roles, err := s.ListConfiguredRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Developer", "Manager"}, roles)
}
