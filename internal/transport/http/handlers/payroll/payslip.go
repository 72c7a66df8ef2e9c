package payrollhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"caribpay/internal/domain/payroll"
	"caribpay/internal/transport/http/api"
	"caribpay/internal/transport/http/middleware"
	"caribpay/internal/transport/http/shared"
)

// handlePayslip calculates and renders the result as a payslip PDF.
func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
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

	filePath, err := h.renderPayslipPDF(employee, result)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_error", err.Error(), reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(filePath)))
	http.ServeFile(w, r, filePath)
}

func (h *Handler) renderPayslipPDF(employee payroll.EmployeeInput, result *payroll.CalculationResult) (string, error) {
	if err := os.MkdirAll(h.PayslipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(h.PayslipDir, uuid.NewString()+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", employee.Name, employee.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Jurisdiction: %s", result.Jurisdiction))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		result.PeriodStart.Format("2006-01-02"), result.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 7, "Code", "B", 0, "", false, 0, "")
	pdf.CellFormat(90, 7, "Description", "B", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range result.LineItems {
		pdf.CellFormat(30, 6, item.Code, "", 0, "", false, 0, "")
		pdf.CellFormat(90, 6, item.Name, "", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, item.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Gross: %s", result.GrossTotal.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Deductions: %s", result.DeductionsTotal.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Net: %s", result.NetSalary.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
