package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedDate = time.Unix(1_700_000_000, 0).UTC()

func TestNewLoanState_Defaults(t *testing.T) {
	s := NewLoanState(fixedDate)

	assert.Equal(t, AmountBase, s.Amount)
	assert.Equal(t, PeriodBase, s.Period)
	assert.True(t, s.SubmitStatus.IsNone())
	assert.True(t, s.ReturnDate.Equal(fixedDate.Add(14*24*time.Hour)))
}

func TestNewLoanState_Custom(t *testing.T) {
	custom := fixedDate.Add(7 * 24 * time.Hour)
	s := NewLoanState(fixedDate,
		WithAmount(20_000),
		WithPeriod(21),
		WithReturnDate(custom),
		WithSubmitStatus(Loading()),
	)

	assert.Equal(t, 20_000, s.Amount)
	assert.Equal(t, 21, s.Period)
	assert.True(t, s.ReturnDate.Equal(custom))
	assert.Equal(t, Loading(), s.SubmitStatus)
}

func TestNewLoanState_DoesNotClamp(t *testing.T) {
	s := NewLoanState(fixedDate, WithAmount(1), WithPeriod(3))

	assert.Equal(t, 1, s.Amount)
	assert.Equal(t, 3, s.Period)
}

func TestReturnDateFor(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*3600)
	ref := time.Date(2024, time.March, 1, 10, 30, 0, 250, zone)

	got := ReturnDateFor(ref, 14)
	assert.True(t, got.Equal(ref.Add(14*24*time.Hour)))
	assert.Equal(t, 250, got.Nanosecond())
	assert.Equal(t, zone, got.Location())

	far := ReturnDateFor(ref, 300_000)
	assert.Equal(t, ref.Unix()+300_000*86_400, far.Unix())
	assert.True(t, far.After(ref))

	past := ReturnDateFor(ref, -300_000)
	assert.Equal(t, ref.Unix()-300_000*86_400, past.Unix())
	assert.True(t, past.Before(ref))
}

func TestInterestRate(t *testing.T) {
	tests := []struct {
		period int
		want   float64
	}{
		{period: 1, want: 15.0},
		{period: 7, want: 15.0},
		{period: 14, want: 18.5},
		{period: 21, want: 22.0},
		{period: 28, want: 25.5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("period=%d", tt.period), func(t *testing.T) {
			s := NewLoanState(fixedDate, WithPeriod(tt.period))
			assert.Equal(t, tt.want, s.InterestRate())
		})
	}
}

func TestTotalRepayment(t *testing.T) {
	t.Run("base selection", func(t *testing.T) {
		s := NewLoanState(fixedDate, WithAmount(10_000), WithPeriod(14))
		want := 10_000.0 + 10_000.0*(18.5/100.0)*(14.0/365.0)
		assert.InDelta(t, want, s.TotalRepayment(), 0.01)
	})

	t.Run("max amount", func(t *testing.T) {
		s := NewLoanState(fixedDate, WithAmount(MaxAmount), WithPeriod(28))
		want := 50_000.0 + 50_000.0*(25.5/100.0)*(28.0/365.0)
		assert.InDelta(t, want, s.TotalRepayment(), 0.01)
	})

	t.Run("tracks the current fields", func(t *testing.T) {
		s := NewLoanState(fixedDate)
		before := s.TotalRepayment()
		s.Amount = 20_000
		assert.Greater(t, s.TotalRepayment(), before)
	})
}

func TestLoanState_Equal(t *testing.T) {
	returnDate := fixedDate.Add(14 * 24 * time.Hour)
	base := NewLoanState(fixedDate, WithReturnDate(returnDate))

	assert.True(t, base.Equal(NewLoanState(fixedDate, WithReturnDate(returnDate))))
	assert.True(t, base.Equal(NewLoanState(fixedDate, WithReturnDate(returnDate.In(time.FixedZone("X", 3600))))))
	assert.False(t, base.Equal(NewLoanState(fixedDate, WithAmount(15_000), WithReturnDate(returnDate))))
	assert.False(t, base.Equal(NewLoanState(fixedDate, WithReturnDate(returnDate), WithSubmitStatus(Loading()))))
}

func TestSubmitStatus_Variants(t *testing.T) {
	assert.Equal(t, Loading(), Loading())
	assert.Equal(t, Success(), Success())
	assert.Equal(t, Failure("Network error"), Failure("Network error"))
	assert.NotEqual(t, Failure("Network error"), Failure("Server error"))
	assert.NotEqual(t, Loading(), Success())
	assert.NotEqual(t, Success(), Failure(""))
	assert.True(t, NoStatus().IsNone())
	assert.Equal(t, "error: Server error", Failure("Server error").String())
}

func TestIsAvailablePeriod(t *testing.T) {
	for _, p := range AvailablePeriods {
		assert.True(t, IsAvailablePeriod(p), "period %d", p)
	}
	assert.False(t, IsAvailablePeriod(10))
	assert.False(t, IsAvailablePeriod(0))
}

func TestClampAmount(t *testing.T) {
	assert.Equal(t, MinAmount, ClampAmount(1_000))
	assert.Equal(t, MaxAmount, ClampAmount(100_000))
	assert.Equal(t, 15_000, ClampAmount(15_000))
}

func TestNewLoanApplication(t *testing.T) {
	s := NewLoanState(fixedDate, WithAmount(10_000), WithPeriod(14))
	app := NewLoanApplication(s)

	assert.Equal(t, LoanApplication{Amount: 10_000, Period: 14, TotalRepayment: 10_070}, app)

	body, err := json.Marshal(app)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":10000,"period":14,"totalRepayment":10070}`, string(body))
}
