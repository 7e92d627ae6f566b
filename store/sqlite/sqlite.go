/*
Package sqlite provides the SQLite-backed implementation of the storage
contracts (attendance.Store, roster.Store, liquidation.ConfigStore).

KEY TABLES:
  attendance:       Worked-shift records, upserted by id
  persons:          Employee file
  discounts:        Fixed deductions, FK to persons with ON DELETE CASCADE
  category_configs: Role -> coefficient parameters, keyed by role

CASCADE:
  Person deletion cascades to discounts in the database (foreign_keys=on),
  so no caller ever re-reads and filters the discount table to do it.

DEFAULT CONFIG:
  migrate() seeds the protected "default" category config row with
  INSERT OR IGNORE, so the fallback entry exists from the first run and
  survives restarts untouched.

WAL MODE:
  The database is opened with WAL journaling: readers don't block, a
  single writer at a time, which matches the single-user deployment.

NUMERIC STORAGE:
  Hours and monetary amounts are stored as TEXT in decimal string form and
  parsed back with shopspring/decimal, avoiding float round-trips.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/roster"
)

// Store implements all storage contracts using SQLite.
type Store struct {
	db *sql.DB
}

var (
	_ attendance.Store        = (*Store)(nil)
	_ roster.Store            = (*Store)(nil)
	_ liquidation.ConfigStore = (*Store)(nil)
)

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		created_by TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		hours TEXT NOT NULL,
		status TEXT NOT NULL,
		verified_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_status ON attendance(status);
	CREATE INDEX IF NOT EXISTS idx_attendance_person ON attendance(person_id);

	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS discounts (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_discounts_person ON discounts(person_id);

	CREATE TABLE IF NOT EXISTS category_configs (
		role TEXT PRIMARY KEY,
		monthly_hours_ref TEXT NOT NULL,
		coeff_full_month TEXT NOT NULL,
		fixed_coeff TEXT NOT NULL,
		plus_percent TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	INSERT OR IGNORE INTO category_configs
		(role, monthly_hours_ref, coeff_full_month, fixed_coeff, plus_percent, updated_at)
	VALUES ('default', '160', '1', '0', '0', datetime('now'));
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

func (s *Store) Save(ctx context.Context, rec attendance.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (id, person_id, created_by, date, start_time, end_time, hours, status, verified_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_id = excluded.person_id,
			created_by = excluded.created_by,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			hours = excluded.hours,
			status = excluded.status,
			verified_by = excluded.verified_by`,
		rec.ID, rec.PersonID, rec.CreatedBy, rec.Date.Format("2006-01-02"),
		rec.StartTime, rec.EndTime, rec.Hours.String(), string(rec.Status),
		rec.VerifiedBy, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*attendance.Record, error) {
	rows, err := s.queryRecords(ctx, `SELECT id, person_id, created_by, date, start_time, end_time, hours, status, verified_by
		FROM attendance WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, attendance.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (s *Store) ListByStatus(ctx context.Context, status attendance.Status) ([]attendance.Record, error) {
	return s.queryRecords(ctx, `SELECT id, person_id, created_by, date, start_time, end_time, hours, status, verified_by
		FROM attendance WHERE status = ? ORDER BY rowid`, string(status))
}

func (s *Store) ListAll(ctx context.Context) ([]attendance.Record, error) {
	return s.queryRecords(ctx, `SELECT id, person_id, created_by, date, start_time, end_time, hours, status, verified_by
		FROM attendance ORDER BY rowid`)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var date, hours, status string
		if err := rows.Scan(&rec.ID, &rec.PersonID, &rec.CreatedBy, &date,
			&rec.StartTime, &rec.EndTime, &hours, &status, &rec.VerifiedBy); err != nil {
			return nil, err
		}
		rec.Date, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		rec.Hours, err = decimal.NewFromString(hours)
		if err != nil {
			return nil, fmt.Errorf("parse hours %q: %w", hours, err)
		}
		rec.Status = attendance.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =============================================================================
// ROSTER STORE
// =============================================================================

func (s *Store) GetAllPersons(ctx context.Context) ([]roster.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role FROM persons ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roster.Person
	for rows.Next() {
		var p roster.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPerson(ctx context.Context, id string) (*roster.Person, error) {
	var p roster.Person
	err := s.db.QueryRowContext(ctx, `SELECT id, name, role FROM persons WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) AddPerson(ctx context.Context, name, role string) (*roster.Person, error) {
	if name == "" {
		return nil, roster.ErrMissingName
	}

	p := roster.Person{ID: uuid.NewString(), Name: name, Role: role}
	_, err := s.db.ExecContext(ctx, `INSERT INTO persons (id, name, role, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Role, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdatePerson(ctx context.Context, id, name, role string) (*roster.Person, error) {
	if name == "" {
		return nil, roster.ErrMissingName
	}

	res, err := s.db.ExecContext(ctx, `UPDATE persons SET name = ?, role = ? WHERE id = ?`, name, role, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return &roster.Person{ID: id, Name: name, Role: role}, nil
}

// DeletePerson removes the person; the discounts FK cascade removes theirs.
func (s *Store) DeletePerson(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetDiscounts(ctx context.Context, personID string) ([]roster.Discount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, person_id, label, amount FROM discounts WHERE person_id = ? ORDER BY rowid`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roster.Discount
	for rows.Next() {
		var d roster.Discount
		var amount string
		if err := rows.Scan(&d.ID, &d.PersonID, &d.Label, &amount); err != nil {
			return nil, err
		}
		d.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) AddDiscount(ctx context.Context, d roster.Discount) (*roster.Discount, error) {
	if d.Amount.IsNegative() {
		return nil, roster.ErrNegativeAmount
	}

	d.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO discounts (id, person_id, label, amount, created_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.PersonID, d.Label, d.Amount.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) DeleteDiscount(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// =============================================================================
// CONFIG STORE
// =============================================================================

func (s *Store) GetConfig(ctx context.Context, role string) (liquidation.CategoryConfig, error) {
	cfg, found, err := s.getConfig(ctx, role)
	if err != nil {
		return liquidation.CategoryConfig{}, err
	}
	if found {
		return cfg, nil
	}

	cfg, found, err = s.getConfig(ctx, liquidation.DefaultRole)
	if err != nil {
		return liquidation.CategoryConfig{}, err
	}
	if !found {
		return liquidation.CategoryConfig{}, fmt.Errorf("default category config missing")
	}
	return cfg, nil
}

func (s *Store) getConfig(ctx context.Context, role string) (liquidation.CategoryConfig, bool, error) {
	var ref, full, fixed, plus string
	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_hours_ref, coeff_full_month, fixed_coeff, plus_percent FROM category_configs WHERE role = ?`, role).
		Scan(&ref, &full, &fixed, &plus)
	if err == sql.ErrNoRows {
		return liquidation.CategoryConfig{}, false, nil
	}
	if err != nil {
		return liquidation.CategoryConfig{}, false, err
	}

	cfg, err := parseConfig(ref, full, fixed, plus)
	if err != nil {
		return liquidation.CategoryConfig{}, false, err
	}
	return cfg, true, nil
}

func (s *Store) GetAllConfigs(ctx context.Context) (map[string]liquidation.CategoryConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, monthly_hours_ref, coeff_full_month, fixed_coeff, plus_percent FROM category_configs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]liquidation.CategoryConfig)
	for rows.Next() {
		var role, ref, full, fixed, plus string
		if err := rows.Scan(&role, &ref, &full, &fixed, &plus); err != nil {
			return nil, err
		}
		cfg, err := parseConfig(ref, full, fixed, plus)
		if err != nil {
			return nil, err
		}
		out[role] = cfg
	}
	return out, rows.Err()
}

func (s *Store) SetConfig(ctx context.Context, role string, cfg liquidation.CategoryConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_configs (role, monthly_hours_ref, coeff_full_month, fixed_coeff, plus_percent, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(role) DO UPDATE SET
			monthly_hours_ref = excluded.monthly_hours_ref,
			coeff_full_month = excluded.coeff_full_month,
			fixed_coeff = excluded.fixed_coeff,
			plus_percent = excluded.plus_percent,
			updated_at = excluded.updated_at`,
		role, cfg.MonthlyHoursRef.String(), cfg.CoeffFullMonth.String(),
		cfg.FixedCoeff.String(), cfg.PlusPercent.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) DeleteConfig(ctx context.Context, role string) (bool, error) {
	if role == liquidation.DefaultRole {
		return false, liquidation.ErrDefaultProtected
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM category_configs WHERE role = ?`, role)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ListConfiguredRoles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role FROM category_configs WHERE role != ? ORDER BY role`, liquidation.DefaultRole)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func parseConfig(ref, full, fixed, plus string) (liquidation.CategoryConfig, error) {
	var cfg liquidation.CategoryConfig
	var err error
	if cfg.MonthlyHoursRef, err = decimal.NewFromString(ref); err != nil {
		return cfg, fmt.Errorf("parse monthly_hours_ref %q: %w", ref, err)
	}
	if cfg.CoeffFullMonth, err = decimal.NewFromString(full); err != nil {
		return cfg, fmt.Errorf("parse coeff_full_month %q: %w", full, err)
	}
	if cfg.FixedCoeff, err = decimal.NewFromString(fixed); err != nil {
		return cfg, fmt.Errorf("parse fixed_coeff %q: %w", fixed, err)
	}
	if cfg.PlusPercent, err = decimal.NewFromString(plus); err != nil {
		return cfg, fmt.Errorf("parse plus_percent %q: %w", plus, err)
	}
	return cfg, nil
}
