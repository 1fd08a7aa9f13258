package service

import "loan-calculator/domain"

// Reduce returns the state that follows s after action. It performs no I/O
// and never reads the clock: reference dates and persisted values arrive in
// the action.
func Reduce(s domain.LoanState, action domain.Action) domain.LoanState {
	switch a := action.(type) {
	case domain.UpdateAmount:
		s.Amount = domain.ClampAmount(a.Amount)

	case domain.UpdatePeriod:
		// any period is accepted; the slider offers only AvailablePeriods
		s.Period = a.Period
		s.ReturnDate = domain.ReturnDateFor(a.ReferenceDate, a.Period)

	case domain.Submit:
		s.SubmitStatus = a.Status

	case domain.LoadFromDefaults:
		if a.Saved != nil {
			s = domain.NewLoanState(a.ReferenceDate,
				domain.WithAmount(a.Saved.Amount),
				domain.WithPeriod(a.Saved.Period),
			)
		}
	}
	return s
}
