package domain

import "time"

const (
	AmountBase       = 10_000
	PeriodBase       = 14
	MinAmount        = 5_000
	MaxAmount        = 50_000
	BaseInterestRate = 15.0
)

const (
	// interest grows by half a point per day beyond the first week
	interestStepPerDay = 0.5
	minPeriodForStep   = 7
	daysPerYear        = 365
)

// AvailablePeriods lists the loan durations, in days, offered to the user.
var AvailablePeriods = []int{7, 14, 21, 28}

// IsAvailablePeriod reports whether period is one of AvailablePeriods.
func IsAvailablePeriod(period int) bool {
	for _, p := range AvailablePeriods {
		if p == period {
			return true
		}
	}
	return false
}

// LoanState is the whole calculator state. Values are replaced, never mutated,
// by the reducer.
type LoanState struct {
	Amount       int
	Period       int
	ReturnDate   time.Time
	SubmitStatus SubmitStatus
}

type StateOption func(*stateParams)

type stateParams struct {
	amount     int
	period     int
	returnDate *time.Time
	status     SubmitStatus
}

func WithAmount(amount int) StateOption {
	return func(p *stateParams) { p.amount = amount }
}

func WithPeriod(period int) StateOption {
	return func(p *stateParams) { p.period = period }
}

// WithReturnDate pins the return date instead of deriving it from the
// reference date.
func WithReturnDate(date time.Time) StateOption {
	return func(p *stateParams) { p.returnDate = &date }
}

func WithSubmitStatus(status SubmitStatus) StateOption {
	return func(p *stateParams) { p.status = status }
}

// NewLoanState builds a state with the default amount and period unless
// overridden. Values are taken as given; clamping belongs to the reducer.
func NewLoanState(reference time.Time, opts ...StateOption) LoanState {
	p := stateParams{
		amount: AmountBase,
		period: PeriodBase,
	}
	for _, opt := range opts {
		opt(&p)
	}

	returnDate := ReturnDateFor(reference, p.period)
	if p.returnDate != nil {
		returnDate = *p.returnDate
	}

	return LoanState{
		Amount:       p.amount,
		Period:       p.period,
		ReturnDate:   returnDate,
		SubmitStatus: p.status,
	}
}

const secondsPerDay = 24 * 60 * 60

// ReturnDateFor returns reference shifted by period whole days of 24 hours.
// The shift is computed in seconds so periods past the time.Duration range
// still land on the right side of reference.
func ReturnDateFor(reference time.Time, period int) time.Time {
	secs := reference.Unix() + int64(period)*secondsPerDay
	return time.Unix(secs, int64(reference.Nanosecond())).In(reference.Location())
}

// InterestRate is the annual rate in percent for the current period.
func (s LoanState) InterestRate() float64 {
	extraDays := s.Period - minPeriodForStep
	if extraDays < 0 {
		extraDays = 0
	}
	return BaseInterestRate + float64(extraDays)*interestStepPerDay
}

// TotalRepayment is the principal plus simple interest accrued over the period.
func (s LoanState) TotalRepayment() float64 {
	amount := float64(s.Amount)
	interest := amount * (s.InterestRate() / 100) * float64(s.Period) / daysPerYear
	return amount + interest
}

// Equal compares two states field by field. ReturnDate is compared as an
// instant so states built in different locations still match.
func (s LoanState) Equal(other LoanState) bool {
	return s.Amount == other.Amount &&
		s.Period == other.Period &&
		s.ReturnDate.Equal(other.ReturnDate) &&
		s.SubmitStatus == other.SubmitStatus
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampAmount bounds amount to [MinAmount, MaxAmount].
func ClampAmount(amount int) int {
	return clamp(amount, MinAmount, MaxAmount)
}
