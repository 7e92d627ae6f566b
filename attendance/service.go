/*
service.go - Attendance lifecycle operations

PURPOSE:
  Implements the worked-shift state machine on top of a Store:

      create            confirm/reject
  (employee) --> PENDING ---------------> CONFIRMED | REJECTED

  Both CONFIRMED and REJECTED are terminal. The verifier id is stamped on
  the record exactly when it leaves PENDING.

TRANSITION GUARD:
  Historically, confirm/reject silently overwrote records in terminal
  states (last write wins). That behavior is preserved behind
  Strict=false; Strict=true makes the guard explicit and rejects any
  transition out of a terminal state with ErrAlreadyVerified.

SIDE EFFECTS:
  Every Create/Confirm/Reject persists through Store.Save (upsert by id).
  There is no in-memory cache: list operations always re-read the store,
  so within a session reads reflect all prior writes.

SEE ALSO:
  - clock.go: HoursBetween, used at creation time
  - store.go: Persistence contract
*/
package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service manages attendance records through their lifecycle.
type Service struct {
	Store Store

	// Strict rejects confirm/reject on records that already left PENDING.
	// When false, a second verification overwrites the first.
	Strict bool
}

func NewService(store Store, strict bool) *Service {
	return &Service{Store: store, Strict: strict}
}

// Create registers a new worked shift. Hours are computed from the clock
// times once, here; the record starts PENDING with no verifier.
func (s *Service) Create(ctx context.Context, personID, createdBy string, date time.Time, start, end string) (*Record, error) {
	hours, err := HoursBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("compute hours: %w", err)
	}

	rec := Record{
		ID:        uuid.NewString(),
		PersonID:  personID,
		CreatedBy: createdBy,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Hours:     hours,
		Status:    StatusPending,
	}

	if err := s.Store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}
	return &rec, nil
}

// Confirm marks a record as audited and accepted, stamping the verifier id.
func (s *Service) Confirm(ctx context.Context, rec Record, verifierID string) (*Record, error) {
	return s.verify(ctx, rec, verifierID, StatusConfirmed)
}

// Reject marks a record as audited and declined, stamping the verifier id.
func (s *Service) Reject(ctx context.Context, rec Record, verifierID string) (*Record, error) {
	return s.verify(ctx, rec, verifierID, StatusRejected)
}

func (s *Service) verify(ctx context.Context, rec Record, verifierID string, to Status) (*Record, error) {
	if verifierID == "" {
		return nil, ErrMissingVerifier
	}
	if s.Strict && rec.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrAlreadyVerified, rec.ID, rec.Status)
	}

	rec.Status = to
	rec.VerifiedBy = verifierID

	if err := s.Store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}
	return &rec, nil
}

// Get fetches a single record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.Store.Get(ctx, id)
}

// ListPending returns records awaiting audit.
func (s *Service) ListPending(ctx context.Context) ([]Record, error) {
	return s.Store.ListByStatus(ctx, StatusPending)
}

// ListConfirmed returns records eligible for distribution.
func (s *Service) ListConfirmed(ctx context.Context) ([]Record, error) {
	return s.Store.ListByStatus(ctx, StatusConfirmed)
}

// ListAll returns every record regardless of status.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	return s.Store.ListAll(ctx)
}
