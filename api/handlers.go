/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the attendance audit flow, roster management, coefficient
  configuration, and the period-end runs via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Attendance:
    GET    /api/attendance                 List records (?status=pending|confirmed|all)
    POST   /api/attendance                 Register a worked shift
    POST   /api/attendance/{id}/confirm    Audit: accept
    POST   /api/attendance/{id}/reject     Audit: decline

  Roster:
    GET    /api/persons                    List employees
    POST   /api/persons                    Create employee
    PUT    /api/persons/{id}               Update employee
    DELETE /api/persons/{id}               Delete employee (cascades discounts)
    GET    /api/persons/{id}/discounts     List fixed deductions
    POST   /api/persons/{id}/discounts     Attach a deduction
    DELETE /api/discounts/{id}             Remove a deduction

  Categories:
    GET    /api/categories                 All coefficient configs by role
    PUT    /api/categories/{role}          Create or replace a role config
    DELETE /api/categories/{role}          Remove a role config

  Runs:
    POST   /api/liquidation                Distribute a pool over confirmed hours
    POST   /api/receipts                   Liquidation plus per-person receipts

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (re-auditing a verified record in strict mode)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/payrun"
	"github.com/nomina/payroll-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Attendance *attendance.Service
	Roster     roster.Store
	Configs    liquidation.ConfigStore
	Runner     *payrun.Runner
}

// NewHandler creates a handler over the given service and stores.
func NewHandler(att *attendance.Service, ros roster.Store, cfg liquidation.ConfigStore) *Handler {
	return &Handler{
		Attendance: att,
		Roster:     ros,
		Configs:    cfg,
		Runner:     payrun.NewRunner(att.Store, ros, cfg),
	}
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// ListAttendance returns records filtered by ?status= (default: all).
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	var (
		recs []attendance.Record
		err  error
	)
	switch strings.ToLower(r.URL.Query().Get("status")) {
	case "", "all":
		recs, err = h.Attendance.ListAll(r.Context())
	case "pending":
		recs, err = h.Attendance.ListPending(r.Context())
	case "confirmed":
		recs, err = h.Attendance.ListConfirmed(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "Unknown status filter", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceDTOs(recs))
}

// CreateAttendance registers a new worked shift in PENDING state.
func (h *Handler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.PersonID == "" {
		writeError(w, http.StatusBadRequest, "person_id is required", nil)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	rec, err := h.Attendance.Create(r.Context(), req.PersonID, req.CreatedBy, date, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to create attendance", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAttendanceDTO(*rec))
}

// ConfirmAttendance audits a record as accepted.
func (h *Handler) ConfirmAttendance(w http.ResponseWriter, r *http.Request) {
	h.verifyAttendance(w, r, h.Attendance.Confirm)
}

// RejectAttendance audits a record as declined.
func (h *Handler) RejectAttendance(w http.ResponseWriter, r *http.Request) {
	h.verifyAttendance(w, r, h.Attendance.Reject)
}

func (h *Handler) verifyAttendance(w http.ResponseWriter, r *http.Request,
	verify func(ctx context.Context, rec attendance.Record, verifierID string) (*attendance.Record, error)) {

	id := chi.URLParam(r, "id")

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Attendance.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Attendance record not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load attendance", err)
		return
	}

	updated, err := verify(r.Context(), *rec, req.VerifierID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrMissingVerifier):
			writeError(w, http.StatusBadRequest, "verifier_id is required", err)
		case errors.Is(err, attendance.ErrAlreadyVerified):
			writeError(w, http.StatusConflict, "Record already verified", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to verify attendance", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceDTO(*updated))
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// ListPersons returns the full roster in insertion order.
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Roster.GetAllPersons(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list persons", err)
		return
	}

	dtos := make([]PersonDTO, len(persons))
	for i, p := range persons {
		dtos[i] = toPersonDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePerson adds an employee to the roster.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.Roster.AddPerson(r.Context(), req.Name, req.Role)
	if err != nil {
		if errors.Is(err, roster.ErrMissingName) {
			writeError(w, http.StatusBadRequest, "name is required", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create person", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonDTO(*p))
}

// UpdatePerson renames or recategorizes an employee.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.Roster.UpdatePerson(r.Context(), id, req.Name, req.Role)
	if err != nil {
		if errors.Is(err, roster.ErrMissingName) {
			writeError(w, http.StatusBadRequest, "name is required", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update person", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPersonDTO(*p))
}

// DeletePerson removes an employee and their discounts.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.Roster.DeletePerson(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete person", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDiscounts returns the fixed deductions attached to one employee.
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Roster.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load person", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	discounts, err := h.Roster.GetDiscounts(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list discounts", err)
		return
	}

	dtos := make([]DiscountDTO, len(discounts))
	for i, d := range discounts {
		dtos[i] = toDiscountDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDiscount attaches a fixed deduction to an employee.
func (h *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.Roster.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load person", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	d, err := h.Roster.AddDiscount(r.Context(), roster.Discount{
		PersonID: id,
		Label:    req.Label,
		Amount:   decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		if errors.Is(err, roster.ErrNegativeAmount) {
			writeError(w, http.StatusBadRequest, "amount must not be negative", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create discount", err)
		return
	}

	writeJSON(w, http.StatusCreated, toDiscountDTO(*d))
}

// DeleteDiscount removes one deduction.
func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.Roster.DeleteDiscount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete discount", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Discount not found", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CATEGORY CONFIG HANDLERS
// =============================================================================

// ListCategories returns every coefficient config keyed by role, the
// protected default included.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Configs.GetAllConfigs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	out := make(map[string]CategoryConfigDTO, len(configs))
	for role, cfg := range configs {
		out[role] = toCategoryConfigDTO(cfg)
	}
	writeJSON(w, http.StatusOK, out)
}

// PutCategory creates or replaces the config for one role.
func (h *Handler) PutCategory(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")

	var req CategoryConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg := liquidation.CategoryConfig{
		MonthlyHoursRef: decimal.NewFromFloat(req.MonthlyHoursRef),
		CoeffFullMonth:  decimal.NewFromFloat(req.CoeffFullMonth),
		FixedCoeff:      decimal.NewFromFloat(req.FixedCoeff),
		PlusPercent:     decimal.NewFromFloat(req.PlusPercent),
	}
	if err := h.Configs.SetConfig(r.Context(), role, cfg); err != nil {
		if errors.Is(err, liquidation.ErrInvalidReferenceHours) {
			writeError(w, http.StatusBadRequest, "monthly_hours_ref must be positive", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store category config", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// DeleteCategory removes a role config; the default is protected.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")

	ok, err := h.Configs.DeleteConfig(r.Context(), role)
	if err != nil {
		if errors.Is(err, liquidation.ErrDefaultProtected) {
			writeError(w, http.StatusBadRequest, "The default config cannot be deleted", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete category config", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// RunLiquidation distributes a surplus pool over all confirmed hours.
func (h *Handler) RunLiquidation(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Runner.Liquidate(r.Context(), decimal.NewFromFloat(req.Pool))
	if err != nil {
		if errors.Is(err, liquidation.ErrNonPositivePool) {
			writeError(w, http.StatusBadRequest, "pool must be positive", err)
			return
		}
		if errors.Is(err, liquidation.ErrInvalidReferenceHours) {
			writeError(w, http.StatusBadRequest, "A category config has non-positive reference hours", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Liquidation run failed", err)
		return
	}

	liquidationRuns.Inc()
	writeJSON(w, http.StatusOK, toLiquidationResponse(res))
}

// RunReceipts performs a liquidation and generates per-person receipts net
// of stored discounts. Period defaults to the current month.
func (h *Handler) RunReceipts(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period := req.Period
	if period == "" {
		period = time.Now().Format("2006-01")
	}

	res, err := h.Runner.GenerateReceipts(r.Context(), decimal.NewFromFloat(req.Pool), period)
	if err != nil {
		if errors.Is(err, liquidation.ErrNonPositivePool) {
			writeError(w, http.StatusBadRequest, "pool must be positive", err)
			return
		}
		if errors.Is(err, liquidation.ErrInvalidReferenceHours) {
			writeError(w, http.StatusBadRequest, "A category config has non-positive reference hours", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Receipt run failed", err)
		return
	}

	receiptRuns.Inc()
	writeJSON(w, http.StatusOK, toReceiptRunResponse(res))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
