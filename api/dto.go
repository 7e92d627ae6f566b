/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model (decimal.Decimal everywhere) from the external
  API contract (plain JSON numbers), allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AND HOURS:
  Internally every amount is a decimal.Decimal. At the API boundary they
  are rendered as float64; by then all arithmetic and rounding has already
  happened, so the conversion is display-only.

SEE ALSO:
  - handlers.go: Uses these types
  - liquidation/engine.go: Where the decimal arithmetic lives
*/
package api

import (
	"time"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/payrun"
	"github.com/nomina/payroll-engine/roster"
)

// =============================================================================
// ATTENDANCE
// =============================================================================

// AttendanceDTO represents a worked-shift record in API responses.
type AttendanceDTO struct {
	ID         string  `json:"id"`
	PersonID   string  `json:"person_id"`
	CreatedBy  string  `json:"created_by"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Hours      float64 `json:"hours"`
	Status     string  `json:"status"`
	VerifiedBy string  `json:"verified_by,omitempty"`
}

// CreateAttendanceRequest is the request to register a worked shift.
type CreateAttendanceRequest struct {
	PersonID  string `json:"person_id"`
	CreatedBy string `json:"created_by"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// VerifyRequest carries the auditor id for confirm/reject.
type VerifyRequest struct {
	VerifierID string `json:"verifier_id"`
}

func toAttendanceDTO(rec attendance.Record) AttendanceDTO {
	return AttendanceDTO{
		ID:         rec.ID,
		PersonID:   rec.PersonID,
		CreatedBy:  rec.CreatedBy,
		Date:       rec.Date.Format("2006-01-02"),
		StartTime:  rec.StartTime,
		EndTime:    rec.EndTime,
		Hours:      rec.Hours.InexactFloat64(),
		Status:     string(rec.Status),
		VerifiedBy: rec.VerifiedBy,
	}
}

func toAttendanceDTOs(recs []attendance.Record) []AttendanceDTO {
	dtos := make([]AttendanceDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toAttendanceDTO(rec)
	}
	return dtos
}

// =============================================================================
// ROSTER
// =============================================================================

// PersonDTO represents an employee in API responses.
type PersonDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PersonRequest is the request body for creating or updating an employee.
type PersonRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// DiscountDTO represents one fixed deduction in API responses.
type DiscountDTO struct {
	ID       string  `json:"id"`
	PersonID string  `json:"person_id"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
}

// CreateDiscountRequest is the request to attach a deduction to an employee.
type CreateDiscountRequest struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

func toPersonDTO(p roster.Person) PersonDTO {
	return PersonDTO{ID: p.ID, Name: p.Name, Role: p.Role}
}

func toDiscountDTO(d roster.Discount) DiscountDTO {
	return DiscountDTO{
		ID:       d.ID,
		PersonID: d.PersonID,
		Label:    d.Label,
		Amount:   d.Amount.InexactFloat64(),
	}
}

// =============================================================================
// CATEGORY CONFIGURATION
// =============================================================================

// CategoryConfigDTO represents the coefficient parameters for one role.
type CategoryConfigDTO struct {
	MonthlyHoursRef float64 `json:"monthly_hours_ref"`
	CoeffFullMonth  float64 `json:"coeff_full_month"`
	FixedCoeff      float64 `json:"fixed_coeff"`
	PlusPercent     float64 `json:"plus_percent"`
}

func toCategoryConfigDTO(cfg liquidation.CategoryConfig) CategoryConfigDTO {
	return CategoryConfigDTO{
		MonthlyHoursRef: cfg.MonthlyHoursRef.InexactFloat64(),
		CoeffFullMonth:  cfg.CoeffFullMonth.InexactFloat64(),
		FixedCoeff:      cfg.FixedCoeff.InexactFloat64(),
		PlusPercent:     cfg.PlusPercent.InexactFloat64(),
	}
}

// =============================================================================
// LIQUIDATION AND RECEIPTS
// =============================================================================

// RunRequest is the request body for the period-end runs. Period is only
// used by the receipt run and defaults to the current month.
type RunRequest struct {
	Pool   float64 `json:"pool"`
	Period string  `json:"period,omitempty"`
}

// LiquidationLineDTO is one person's share of the distributed pool.
type LiquidationLineDTO struct {
	PersonID    string  `json:"person_id"`
	PersonName  string  `json:"person_name"`
	PersonRole  string  `json:"person_role"`
	Hours       float64 `json:"hours"`
	Coefficient float64 `json:"coefficient"`
	Percentage  float64 `json:"percentage"`
	Gross       float64 `json:"gross"`
}

// LiquidationResponse is the outcome of a liquidation run.
type LiquidationResponse struct {
	Pool       float64              `json:"pool"`
	Lines      []LiquidationLineDTO `json:"lines"`
	TotalHours float64              `json:"total_hours"`
	TotalGross float64              `json:"total_gross"`
}

// DiscountLineDTO is one labeled deduction on a receipt.
type DiscountLineDTO struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ReceiptDTO is one generated pay stub.
type ReceiptDTO struct {
	ID         string            `json:"id"`
	PersonID   string            `json:"person_id"`
	PersonName string            `json:"person_name"`
	PersonRole string            `json:"person_role"`
	Period     string            `json:"period"`
	Gross      float64           `json:"gross"`
	Discounts  []DiscountLineDTO `json:"discounts"`
	Net        float64           `json:"net"`
}

// ReceiptRunResponse is the outcome of a receipt run.
type ReceiptRunResponse struct {
	Period         string       `json:"period"`
	Receipts       []ReceiptDTO `json:"receipts"`
	TotalGross     float64      `json:"total_gross"`
	TotalDiscounts float64      `json:"total_discounts"`
	TotalNet       float64      `json:"total_net"`
}

func toLiquidationResponse(res *payrun.LiquidationResult) LiquidationResponse {
	resp := LiquidationResponse{
		Pool:       res.Pool.InexactFloat64(),
		Lines:      make([]LiquidationLineDTO, len(res.Lines)),
		TotalHours: res.TotalHours.InexactFloat64(),
		TotalGross: res.TotalGross.InexactFloat64(),
	}
	for i, line := range res.Lines {
		resp.Lines[i] = LiquidationLineDTO{
			PersonID:    line.PersonID,
			PersonName:  line.PersonName,
			PersonRole:  line.PersonRole,
			Hours:       line.Hours.InexactFloat64(),
			Coefficient: line.CoeffFinal.InexactFloat64(),
			Percentage:  line.Percentage.InexactFloat64(),
			Gross:       line.Gross.InexactFloat64(),
		}
	}
	return resp
}

func toReceiptRunResponse(res *payrun.ReceiptRunResult) ReceiptRunResponse {
	resp := ReceiptRunResponse{
		Period:         res.Period,
		Receipts:       make([]ReceiptDTO, len(res.Receipts)),
		TotalGross:     res.TotalGross.InexactFloat64(),
		TotalDiscounts: res.TotalDiscounts.InexactFloat64(),
		TotalNet:       res.TotalNet.InexactFloat64(),
	}
	for i, entry := range res.Receipts {
		lines := make([]DiscountLineDTO, len(entry.Discounts))
		for j, d := range entry.Discounts {
			lines[j] = DiscountLineDTO{Label: d.Label, Amount: d.Amount.InexactFloat64()}
		}
		resp.Receipts[i] = ReceiptDTO{
			ID:         entry.ID,
			PersonID:   entry.PersonID,
			PersonName: entry.PersonName,
			PersonRole: entry.PersonRole,
			Period:     entry.Period,
			Gross:      entry.Gross.InexactFloat64(),
			Discounts:  lines,
			Net:        entry.Net.InexactFloat64(),
		}
	}
	return resp
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
