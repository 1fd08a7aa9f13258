package domain

import "github.com/shopspring/decimal"

// LoanSelection is the persisted part of the state.
type LoanSelection struct {
	Amount int
	Period int
}

// LoanApplication is the body sent to the submission endpoint.
type LoanApplication struct {
	Amount         int `json:"amount"`
	Period         int `json:"period"`
	TotalRepayment int `json:"totalRepayment"`
}

// NewLoanApplication builds the payload for s. The total repayment is
// truncated toward zero to whole currency units.
func NewLoanApplication(s LoanState) LoanApplication {
	total := decimal.NewFromFloat(s.TotalRepayment()).Truncate(0)
	return LoanApplication{
		Amount:         s.Amount,
		Period:         s.Period,
		TotalRepayment: int(total.IntPart()),
	}
}

func (s LoanState) Selection() LoanSelection {
	return LoanSelection{Amount: s.Amount, Period: s.Period}
}
