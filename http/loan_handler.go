package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"loan-calculator/domain"
)

const maxBodyBytes = 1 << 10

// LoanStore is the part of the store the handlers need.
type LoanStore interface {
	State() domain.LoanState
	Dispatch(ctx context.Context, action domain.Action)
}

type LoanHandler struct {
	store  LoanStore
	logger *zap.Logger
}

func NewLoanHandler(store LoanStore, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{store: store, logger: logger}
}

type amountRequest struct {
	Amount *int `json:"amount"`
}

type periodRequest struct {
	Period *int `json:"period"`
}

func (h *LoanHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newStateResponse(h.store.State()))
}

func (h *LoanHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Amount == nil {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	h.store.Dispatch(r.Context(), domain.UpdateAmount{Amount: *req.Amount})
	h.writeJSON(w, http.StatusOK, newStateResponse(h.store.State()))
}

func (h *LoanHandler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Period == nil {
		http.Error(w, "period is required", http.StatusBadRequest)
		return
	}
	// the reducer accepts any period; this surface only offers the slider's stops
	if !domain.IsAvailablePeriod(*req.Period) {
		http.Error(w, "period must be one of 7, 14, 21, 28", http.StatusBadRequest)
		return
	}

	h.store.Dispatch(r.Context(), domain.UpdatePeriod{Period: *req.Period})
	h.writeJSON(w, http.StatusOK, newStateResponse(h.store.State()))
}

// Submit starts a submission. While one is loading the control is disabled,
// so the request is refused.
func (h *LoanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.store.State().SubmitStatus.IsLoading() {
		http.Error(w, "submission already in progress", http.StatusConflict)
		return
	}

	h.store.Dispatch(r.Context(), domain.Submit{Status: domain.Loading()})
	h.writeJSON(w, http.StatusAccepted, newStateResponse(h.store.State()))
}

func (h *LoanHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Debug("invalid request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
