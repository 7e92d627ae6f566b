/*
Package attendance manages worked-shift records through their audit lifecycle.

PURPOSE:
  Employees register worked shifts (date plus start/end clock times). Each
  record enters the system PENDING and an auditor later confirms or rejects
  it. Only confirmed records count toward surplus distribution.

KEY CONCEPTS IN THIS PACKAGE:
  - Record: One worked shift with computed hours and a status
  - Status: PENDING -> CONFIRMED | REJECTED (terminal)
  - HoursBetween: Clock-time pair to decimal hours (clock.go)
  - Service: Lifecycle operations backed by a Store (service.go)

DESIGN PRINCIPLES:
  1. Hours are computed once, at creation, and never recomputed
  2. Precision: decimal.Decimal for hours, two decimal places
  3. Every mutation goes through the Store's upsert; reads re-fetch the store
  4. The verifier id is stamped exactly when a record leaves PENDING

SEE ALSO:
  - clock.go: Hours calculation and midnight wraparound
  - service.go: Create/Confirm/Reject operations
  - store.go: Persistence contract
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS - Lifecycle state of a worked-shift record
// =============================================================================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// =============================================================================
// RECORD - One worked shift
// =============================================================================

// Record is a single worked shift. Hours are computed from StartTime/EndTime
// at creation time. VerifiedBy is empty while the record is PENDING and is
// set exactly once, when an auditor confirms or rejects it.
type Record struct {
	ID         string
	PersonID   string
	CreatedBy  string
	Date       time.Time
	StartTime  string // "HH:MM", 24-hour clock
	EndTime    string
	Hours      decimal.Decimal
	Status     Status
	VerifiedBy string
}
