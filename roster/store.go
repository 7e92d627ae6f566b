package roster

import "context"

// =============================================================================
// STORE - Persistence contract for persons and discounts
// =============================================================================

// Store persists persons and their discounts.
//
// CONTRACT:
//   - Reads return snapshot copies; callers may mutate results freely.
//   - Not-found is a nil/false result, not an error: UpdatePerson returns
//     (nil, nil) and DeletePerson/DeleteDiscount return (false, nil) when
//     the id is unknown. Callers must check the result.
//   - DeletePerson cascades: the person's discounts are removed in the
//     same operation (foreign-key or index based, not a full scan at the
//     caller's layer).
type Store interface {
	GetAllPersons(ctx context.Context) ([]Person, error)

	// GetPerson returns (nil, nil) when the id is unknown.
	GetPerson(ctx context.Context, id string) (*Person, error)

	// AddPerson assigns a fresh id and stores the person.
	AddPerson(ctx context.Context, name, role string) (*Person, error)

	// UpdatePerson overwrites name/role; (nil, nil) when the id is unknown.
	UpdatePerson(ctx context.Context, id, name, role string) (*Person, error)

	// DeletePerson removes the person and all their discounts.
	DeletePerson(ctx context.Context, id string) (bool, error)

	// GetDiscounts returns the discounts owned by a person.
	GetDiscounts(ctx context.Context, personID string) ([]Discount, error)

	// AddDiscount assigns a fresh id and stores the discount.
	AddDiscount(ctx context.Context, d Discount) (*Discount, error)

	// DeleteDiscount removes a single discount by id.
	DeleteDiscount(ctx context.Context, id string) (bool, error)
}
