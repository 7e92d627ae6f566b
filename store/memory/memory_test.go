package memory_test

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
	"github.com/nomina/payroll-engine/store/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(id string, status attendance.Status) attendance.Record {
	return attendance.Record{
		ID:        id,
		PersonID:  "person-1",
		CreatedBy: "person-1",
		Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "17:00",
		Hours:     dec("8"),
		Status:    status,
	}
}

// =============================================================================
// ATTENDANCE STORE TESTS
// =============================================================================

func TestSave_UpsertsByID(t *testing.T) {
	// GIVEN: A stored pending record
	// WHEN: Saving again under the same id with a new status
	// THEN: The record is replaced, not duplicated

	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Save(ctx, record("r1", attendance.StatusPending)))
	require.NoError(t, s.Save(ctx, record("r1", attendance.StatusConfirmed)))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, attendance.StatusConfirmed, all[0].Status)
}

func TestListAll_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Save(ctx, record(id, attendance.StatusPending)))
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)
}

func TestListByStatus_Filters(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.Save(ctx, record("r1", attendance.StatusPending)))
	require.NoError(t, s.Save(ctx, record("r2", attendance.StatusConfirmed)))
	require.NoError(t, s.Save(ctx, record("r3", attendance.StatusConfirmed)))

	confirmed, err := s.ListByStatus(ctx, attendance.StatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)
}

func TestGet_UnknownID_NotFound(t *testing.T) {
	s := memory.New()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestGet_ReturnsSnapshotCopy(t *testing.T) {
	// GIVEN: A stored record
	// WHEN: Mutating the returned copy
	// THEN: The stored record is unaffected

	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Save(ctx, record("r1", attendance.StatusPending)))

	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	got.Status = attendance.StatusRejected

	again, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, again.Status)
}

// =============================================================================
// ROSTER STORE TESTS
// =============================================================================

func TestAddPerson_RequiresName(t *testing.T) {
	s := memory.New()

	_, err := s.AddPerson(context.Background(), "", "Developer")
	assert.ErrorIs(t, err, roster.ErrMissingName)
}

func TestUpdatePerson_UnknownID_ReturnsNil(t *testing.T) {
	s := memory.New()

	p, err := s.UpdatePerson(context.Background(), "nope", "Alice", "Developer")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeletePerson_CascadesDiscounts(t *testing.T) {
	// GIVEN: A person with two discounts
	// WHEN: Deleting the person
	// THEN: Their discounts are gone too

	ctx := context.Background()
	s := memory.New()

	p, err := s.AddPerson(ctx, "Alice", "Developer")
	require.NoError(t, err)
	_, err = s.AddDiscount(ctx, roster.Discount{PersonID: p.ID, Label: "Health Plan", Amount: dec("1500")})
	require.NoError(t, err)
	d2, err := s.AddDiscount(ctx, roster.Discount{PersonID: p.ID, Label: "Union Dues", Amount: dec("500")})
	require.NoError(t, err)

	ok, err := s.DeletePerson(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	discounts, err := s.GetDiscounts(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, discounts)

	ok, err = s.DeleteDiscount(ctx, d2.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddDiscount_RejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	p, err := s.AddPerson(ctx, "Alice", "Developer")
	require.NoError(t, err)

	_, err = s.AddDiscount(ctx, roster.Discount{PersonID: p.ID, Label: "Oops", Amount: dec("-1")})
	assert.ErrorIs(t, err, roster.ErrNegativeAmount)
}

// =============================================================================
// CONFIG STORE TESTS
// =============================================================================

func TestGetConfig_FallsBackToDefault(t *testing.T) {
	// GIVEN: A fresh store with only the seeded default config
	// WHEN: Resolving an unconfigured role
	// THEN: The default (160h reference, coefficient 1) applies

	ctx := context.Background()
	s := memory.New()

	cfg, err := s.GetConfig(ctx, "Astronaut")
	require.NoError(t, err)
	assert.True(t, cfg.MonthlyHoursRef.Equal(dec("160")))
	assert.True(t, cfg.CoeffFullMonth.Equal(dec("1")))
}

func TestSetConfig_ValidatesReferenceHours(t *testing.T) {
	s := memory.New()

	err := s.SetConfig(context.Background(), "Developer", liquidation.CategoryConfig{
		MonthlyHoursRef: decimal.Zero,
		CoeffFullMonth:  dec("1"),
	})
	assert.ErrorIs(t, err, liquidation.ErrInvalidReferenceHours)
}

func TestDeleteConfig_DefaultProtected(t *testing.T) {
	s := memory.New()

	_, err := s.DeleteConfig(context.Background(), liquidation.DefaultRole)
	assert.ErrorIs(t, err, liquidation.ErrDefaultProtected)
}

func TestListConfiguredRoles_ExcludesDefault(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.SetConfig(ctx, "Developer", liquidation.CategoryConfig{
		MonthlyHoursRef: dec("160"),
		CoeffFullMonth:  dec("1"),
	}))

	roles, err := s.ListConfiguredRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Developer"}, roles)
}
