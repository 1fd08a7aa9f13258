package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"loan-calculator/domain"
	"loan-calculator/format"
)

type submitStatusResponse struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

type displayResponse struct {
	Amount         string `json:"amount"`
	TotalRepayment string `json:"totalRepayment"`
	ReturnDate     string `json:"returnDate"`
}

type stateResponse struct {
	Amount           int                  `json:"amount"`
	Period           int                  `json:"period"`
	ReturnDate       time.Time            `json:"returnDate"`
	InterestRate     float64              `json:"interestRate"`
	TotalRepayment   float64              `json:"totalRepayment"`
	SubmitStatus     submitStatusResponse `json:"submitStatus"`
	Display          displayResponse      `json:"display"`
	MinAmount        int                  `json:"minAmount"`
	MaxAmount        int                  `json:"maxAmount"`
	AvailablePeriods []int                `json:"availablePeriods"`
}

func newStateResponse(s domain.LoanState) stateResponse {
	return stateResponse{
		Amount:         s.Amount,
		Period:         s.Period,
		ReturnDate:     s.ReturnDate,
		InterestRate:   s.InterestRate(),
		TotalRepayment: s.TotalRepayment(),
		SubmitStatus: submitStatusResponse{
			State:   s.SubmitStatus.Kind.String(),
			Message: s.SubmitStatus.Message,
		},
		Display: displayResponse{
			Amount:         format.FormatCurrency(s.Amount),
			TotalRepayment: format.FormatCurrencyDouble(s.TotalRepayment()),
			ReturnDate:     format.FormatDate(s.ReturnDate),
		},
		MinAmount:        domain.MinAmount,
		MaxAmount:        domain.MaxAmount,
		AvailablePeriods: domain.AvailablePeriods,
	}
}

// writeJSON encodes into a buffer first so a failed encode can still produce
// a clean 500.
func (h *LoanHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing response", zap.Error(err))
	}
}
