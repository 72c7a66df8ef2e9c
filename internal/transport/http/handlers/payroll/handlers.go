package payrollhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"caribpay/internal/domain/payroll"
	"caribpay/internal/transport/http/api"
	"caribpay/internal/transport/http/middleware"
	"caribpay/internal/transport/http/shared"
)

const apiVersion = "1.0.0"

type Handler struct {
	Engine     *payroll.Engine
	PayslipDir string
}

func NewHandler(engine *payroll.Engine, payslipDir string) *Handler {
	return &Handler{Engine: engine, PayslipDir: payslipDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/jurisdictions", h.handleListJurisdictions)
	r.Post("/calculate/batch", h.handleCalculateBatch)
	r.Post("/calculate/{jurisdiction}", h.handleCalculate)
	r.Post("/payslip/{jurisdiction}", h.handlePayslip)
}

type employeePayload struct {
	EmployeeID    string                     `json:"employee_id"`
	Name          string                     `json:"name"`
	Jurisdiction  string                     `json:"jurisdiction"`
	GrossSalary   decimal.Decimal            `json:"gross_salary"`
	HourlyRate    *decimal.Decimal           `json:"hourly_rate"`
	PeriodStart   string                     `json:"period_start"`
	PeriodEnd     string                     `json:"period_end"`
	RegularHours  *decimal.Decimal           `json:"regular_hours"`
	OvertimeHours *decimal.Decimal           `json:"overtime_hours"`
	Allowances    map[string]decimal.Decimal `json:"allowances"`
	Deductions    map[string]decimal.Decimal `json:"deductions"`
	TaxExempt     bool                       `json:"tax_exempt"`
	TaxPercentage *decimal.Decimal           `json:"tax_percentage"`
	Dependents    int                        `json:"dependents"`
	AOVExempt     bool                       `json:"aov_exempt"`
	AWWExempt     bool                       `json:"aww_exempt"`
}

// validate applies the input invariants the engine assumes: positive base
// salary, non-negative monetary values, a known jurisdiction, ordered dates.
func (p employeePayload) validate(v *shared.Validator, jurisdictions []string) (payroll.EmployeeInput, bool) {
	v.Required("employee_id", p.EmployeeID, "is required")
	v.Required("jurisdiction", p.Jurisdiction, "is required")
	v.Enum("jurisdiction", p.Jurisdiction, jurisdictions, "must be one of "+strings.Join(jurisdictions, ", "))
	v.Positive("gross_salary", p.GrossSalary, "must be greater than zero")

	if p.HourlyRate != nil {
		v.NonNegative("hourly_rate", *p.HourlyRate, "must be non-negative")
	}
	regularHours := decimal.NewFromInt(160)
	if p.RegularHours != nil {
		v.NonNegative("regular_hours", *p.RegularHours, "must be non-negative")
		regularHours = *p.RegularHours
	}
	overtimeHours := decimal.Zero
	if p.OvertimeHours != nil {
		v.NonNegative("overtime_hours", *p.OvertimeHours, "must be non-negative")
		overtimeHours = *p.OvertimeHours
	}
	if p.TaxPercentage != nil {
		if p.TaxPercentage.IsNegative() || p.TaxPercentage.GreaterThan(decimal.NewFromInt(100)) {
			v.Add("tax_percentage", "must be between 0 and 100")
		}
	}
	v.NonNegativeMap("allowances", p.Allowances)
	v.NonNegativeMap("deductions", p.Deductions)

	periodStart, _ := v.Date("period_start", p.PeriodStart)
	periodEnd, _ := v.Date("period_end", p.PeriodEnd)
	v.DateOrder("period_start", periodStart, "period_end", periodEnd)

	if v.HasIssues() {
		return payroll.EmployeeInput{}, false
	}

	return payroll.EmployeeInput{
		EmployeeID:    p.EmployeeID,
		Name:          p.Name,
		Jurisdiction:  strings.ToLower(strings.TrimSpace(p.Jurisdiction)),
		BaseSalary:    p.GrossSalary,
		HourlyRate:    p.HourlyRate,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		RegularHours:  regularHours,
		OvertimeHours: overtimeHours,
		Allowances:    p.Allowances,
		Deductions:    p.Deductions,
		TaxExempt:     p.TaxExempt,
		TaxPercentage: p.TaxPercentage,
		Dependents:    p.Dependents,
		AOVExempt:     p.AOVExempt,
		AWWExempt:     p.AWWExempt,
	}, true
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	jurisdiction := strings.ToLower(chi.URLParam(r, "jurisdiction"))

	if _, ok := h.Engine.Calculator(jurisdiction); !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_jurisdiction",
			"jurisdiction must be one of "+strings.Join(h.Engine.Jurisdictions(), ", "), reqID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	if payload.Jurisdiction != "" && !strings.EqualFold(payload.Jurisdiction, jurisdiction) {
		api.Fail(w, http.StatusBadRequest, "jurisdiction_mismatch",
			"URL says "+jurisdiction+" but employee data says "+payload.Jurisdiction, reqID)
		return
	}
	payload.Jurisdiction = jurisdiction

	v := shared.NewValidator()
	employee, ok := payload.validate(v, h.Engine.Jurisdictions())
	if !ok {
		v.Reject(w, reqID)
		return
	}

	result, err := h.Engine.Calculate(r.Context(), employee)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calculation_error", err.Error(), reqID)
		return
	}

	api.Success(w, result, reqID)
}

type batchRequest struct {
	Employees    []employeePayload `json:"employees"`
	ValidateOnly bool              `json:"validate_only"`
}

type batchError struct {
	EmployeeID string `json:"employee_id"`
	Index      int    `json:"index"`
	Error      string `json:"error"`
}

type batchResponse struct {
	SuccessCount int                          `json:"success_count"`
	ErrorCount   int                          `json:"error_count"`
	Results      []*payroll.CalculationResult `json:"results"`
	Errors       []batchError                 `json:"errors"`
}

// handleCalculateBatch processes each employee independently: one employee's
// validation or calculation failure is reported alongside the siblings'
// results rather than aborting the batch.
func (h *Handler) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var request batchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	response := batchResponse{
		Results: make([]*payroll.CalculationResult, 0, len(request.Employees)),
		Errors:  make([]batchError, 0),
	}

	for idx, payload := range request.Employees {
		v := shared.NewValidator()
		employee, ok := payload.validate(v, h.Engine.Jurisdictions())
		if !ok {
			issues := v.Issues()
			reasons := make([]string, 0, len(issues))
			for _, issue := range issues {
				reasons = append(reasons, issue.Field+" "+issue.Reason)
			}
			response.Errors = append(response.Errors, batchError{
				EmployeeID: payload.EmployeeID,
				Index:      idx,
				Error:      strings.Join(reasons, "; "),
			})
			response.ErrorCount++
			continue
		}

		if request.ValidateOnly {
			response.SuccessCount++
			continue
		}

		result, err := h.Engine.Calculate(r.Context(), employee)
		if err != nil {
			response.Errors = append(response.Errors, batchError{
				EmployeeID: payload.EmployeeID,
				Index:      idx,
				Error:      err.Error(),
			})
			response.ErrorCount++
			continue
		}

		response.Results = append(response.Results, result)
		response.SuccessCount++
	}

	api.Success(w, response, reqID)
}

type jurisdictionInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (h *Handler) handleListJurisdictions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	infos := make([]jurisdictionInfo, 0)
	for _, code := range h.Engine.Jurisdictions() {
		calc, _ := h.Engine.Calculator(code)
		infos = append(infos, jurisdictionInfo{
			Code:   code,
			Name:   calc.Name(),
			Status: "implemented",
		})
	}

	api.Success(w, map[string]any{"jurisdictions": infos}, reqID)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	api.Success(w, map[string]any{
		"status":                  "healthy",
		"version":                 apiVersion,
		"jurisdictions_available": h.Engine.Jurisdictions(),
	}, reqID)
}
