/*
Package memory provides in-memory implementations of the storage contracts
(attendance.Store, roster.Store, liquidation.ConfigStore) for tests and
development. Semantics match the SQLite store:

  - Save/Set are upserts by key
  - Reads return snapshot copies
  - Deleting a person cascades to their discounts through a per-person
    index, not a full scan
  - The default category config is seeded at construction and protected

Thread safety is a sync.RWMutex; the system assumes a single logical
writer, the lock only keeps concurrent reads consistent.
*/
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/roster"
)

type Store struct {
	mu sync.RWMutex

	records     map[string]attendance.Record
	recordOrder []string

	persons     map[string]roster.Person
	personOrder []string

	discounts        map[string]roster.Discount
	discountOrder    []string
	discountsByOwner map[string][]string // person id -> discount ids

	configs map[string]liquidation.CategoryConfig
}

// Compile-time checks against the storage contracts.
var (
	_ attendance.Store        = (*Store)(nil)
	_ roster.Store            = (*Store)(nil)
	_ liquidation.ConfigStore = (*Store)(nil)
)

func New() *Store {
	return &Store{
		records:          make(map[string]attendance.Record),
		persons:          make(map[string]roster.Person),
		discounts:        make(map[string]roster.Discount),
		discountsByOwner: make(map[string][]string),
		configs: map[string]liquidation.CategoryConfig{
			liquidation.DefaultRole: DefaultConfig(),
		},
	}
}

// DefaultConfig is the fallback coefficient configuration: a plain full
// 160-hour month with no bonuses.
func DefaultConfig() liquidation.CategoryConfig {
	return liquidation.CategoryConfig{
		MonthlyHoursRef: decimal.NewFromInt(160),
		CoeffFullMonth:  decimal.NewFromInt(1),
	}
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (s *Store) Save(_ context.Context, rec attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		s.recordOrder = append(s.recordOrder, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, attendance.ErrRecordNotFound
	}
	return &rec, nil
}

func (s *Store) ListByStatus(_ context.Context, status attendance.Status) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendance.Record
	for _, id := range s.recordOrder {
		if rec := s.records[id]; rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attendance.Record, 0, len(s.recordOrder))
	for _, id := range s.recordOrder {
		out = append(out, s.records[id])
	}
	return out, nil
}

// =============================================================================
// ROSTER STORE
// =============================================================================

func (s *Store) GetAllPersons(_ context.Context) ([]roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]roster.Person, 0, len(s.personOrder))
	for _, id := range s.personOrder {
		out = append(out, s.persons[id])
	}
	return out, nil
}

func (s *Store) GetPerson(_ context.Context, id string) (*roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) AddPerson(_ context.Context, name, role string) (*roster.Person, error) {
	if name == "" {
		return nil, roster.ErrMissingName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := roster.Person{ID: uuid.NewString(), Name: name, Role: role}
	s.persons[p.ID] = p
	s.personOrder = append(s.personOrder, p.ID)
	return &p, nil
}

func (s *Store) UpdatePerson(_ context.Context, id, name, role string) (*roster.Person, error) {
	if name == "" {
		return nil, roster.ErrMissingName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, nil
	}
	p.Name = name
	p.Role = role
	s.persons[id] = p
	return &p, nil
}

func (s *Store) DeletePerson(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[id]; !ok {
		return false, nil
	}
	delete(s.persons, id)
	s.personOrder = remove(s.personOrder, id)

	// Cascade via the owner index.
	for _, did := range s.discountsByOwner[id] {
		delete(s.discounts, did)
		s.discountOrder = remove(s.discountOrder, did)
	}
	delete(s.discountsByOwner, id)
	return true, nil
}

func (s *Store) GetDiscounts(_ context.Context, personID string) ([]roster.Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.discountsByOwner[personID]
	out := make([]roster.Discount, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.discounts[id])
	}
	return out, nil
}

func (s *Store) AddDiscount(_ context.Context, d roster.Discount) (*roster.Discount, error) {
	if d.Amount.IsNegative() {
		return nil, roster.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	s.discounts[d.ID] = d
	s.discountOrder = append(s.discountOrder, d.ID)
	s.discountsByOwner[d.PersonID] = append(s.discountsByOwner[d.PersonID], d.ID)
	return &d, nil
}

func (s *Store) DeleteDiscount(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.discounts[id]
	if !ok {
		return false, nil
	}
	delete(s.discounts, id)
	s.discountOrder = remove(s.discountOrder, id)
	s.discountsByOwner[d.PersonID] = remove(s.discountsByOwner[d.PersonID], id)
	return true, nil
}

// =============================================================================
// CONFIG STORE
// =============================================================================

func (s *Store) GetConfig(_ context.Context, role string) (liquidation.CategoryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, ok := s.configs[role]; ok {
		return cfg, nil
	}
	return s.configs[liquidation.DefaultRole], nil
}

func (s *Store) GetAllConfigs(_ context.Context) (map[string]liquidation.CategoryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]liquidation.CategoryConfig, len(s.configs))
	for role, cfg := range s.configs {
		out[role] = cfg
	}
	return out, nil
}

func (s *Store) SetConfig(_ context.Context, role string, cfg liquidation.CategoryConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[role] = cfg
	return nil
}

func (s *Store) DeleteConfig(_ context.Context, role string) (bool, error) {
	if role == liquidation.DefaultRole {
		return false, liquidation.ErrDefaultProtected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[role]; !ok {
		return false, nil
	}
	delete(s.configs, role)
	return true, nil
}

func (s *Store) ListConfiguredRoles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roles []string
	for role := range s.configs {
		if role != liquidation.DefaultRole {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
