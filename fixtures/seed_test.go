package fixtures_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomina/payroll-engine/fixtures"
	"github.com/nomina/payroll-engine/store/memory"
)

func TestSeed_PopulatesEmptyStores(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, fixtures.Seed(ctx, s, s))

	persons, err := s.GetAllPersons(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 3)
	assert.Equal(t, "Ivan Garcia", persons[0].Name)

	discounts, err := s.GetDiscounts(ctx, persons[0].ID)
	require.NoError(t, err)
	assert.Len(t, discounts, 2)

	roles, err := s.ListConfiguredRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}

func TestSeed_Idempotent(t *testing.T) {
	// GIVEN: Already-seeded stores
	// WHEN: Seeding again
	// THEN: Nothing is duplicated

	ctx := context.Background()
	s := memory.New()

	require.NoError(t, fixtures.Seed(ctx, s, s))
	require.NoError(t, fixtures.Seed(ctx, s, s))

	persons, err := s.GetAllPersons(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 3)
}
