package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-calculator/domain"
	"loan-calculator/repository"
	"loan-calculator/service"
)

type blockingGateway struct {
	release chan struct{}
}

func (g *blockingGateway) SubmitLoanApplication(ctx context.Context, _ domain.LoanApplication) (int, error) {
	select {
	case <-g.release:
		return http.StatusCreated, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func newTestRouter(t *testing.T, capacity int) (http.Handler, *service.Store) {
	t.Helper()
	clock := func() time.Time { return time.Unix(1_700_000_000, 0).UTC() }
	store := service.NewStore(
		context.Background(),
		repository.NewSelectionStore(repository.NewMemoryCache()),
		&blockingGateway{release: make(chan struct{})},
		nil,
		service.WithClock(clock),
	)
	t.Cleanup(store.Close)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(NewLoanHandler(store, nil), limiter, nil), store
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, stateResponse) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp stateResponse
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestGetState(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w, resp := do(t, router, http.MethodGet, "/loan/state", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10_000, resp.Amount)
	assert.Equal(t, 14, resp.Period)
	assert.Equal(t, 18.5, resp.InterestRate)
	assert.Equal(t, "none", resp.SubmitStatus.State)
	assert.Equal(t, "10,000", resp.Display.Amount)
	assert.Equal(t, "10,070", resp.Display.TotalRepayment)
	assert.Equal(t, "Nov 28, 2023", resp.Display.ReturnDate)
	assert.Equal(t, domain.AvailablePeriods, resp.AvailablePeriods)
}

func TestUpdateAmount(t *testing.T) {
	router, store := newTestRouter(t, 10)

	w, resp := do(t, router, http.MethodPost, "/loan/amount", `{"amount": 100000}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MaxAmount, resp.Amount)
	assert.Equal(t, domain.MaxAmount, store.State().Amount)
}

func TestUpdateAmount_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/loan/amount", bytes.NewBufferString(`{"amount":1}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/loan/amount", `{invalid-json}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/loan/amount", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdatePeriod(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w, resp := do(t, router, http.MethodPost, "/loan/period", `{"period": 21}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 21, resp.Period)
	assert.Equal(t, 22.0, resp.InterestRate)

	w, _ = do(t, router, http.MethodPost, "/loan/period", `{"period": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit(t *testing.T) {
	router, store := newTestRouter(t, 10)

	w, resp := do(t, router, http.MethodPost, "/loan/submit", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "loading", resp.SubmitStatus.State)
	assert.True(t, store.State().SubmitStatus.IsLoading())

	w, _ = do(t, router, http.MethodPost, "/loan/submit", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w, _ := do(t, router, http.MethodGet, "/loan/amount", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimitedRoutes(t *testing.T) {
	router, _ := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		w, _ := do(t, router, http.MethodPost, "/loan/amount", `{"amount": 20000}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := do(t, router, http.MethodPost, "/loan/amount", `{"amount": 20000}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	w, _ = do(t, router, http.MethodGet, "/loan/state", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
