package domain

import "time"

// Action describes an intended state change. The set of actions is closed.
type Action interface {
	isAction()
}

// UpdateAmount sets the principal; the reducer clamps it.
type UpdateAmount struct {
	Amount int
}

// UpdatePeriod sets the duration in days and recomputes the return date from
// ReferenceDate.
type UpdatePeriod struct {
	Period        int
	ReferenceDate time.Time
}

// Submit replaces the submission status verbatim.
type Submit struct {
	Status SubmitStatus
}

// LoadFromDefaults restores the last persisted selection. Saved is nil when
// nothing (or only half a selection) has been persisted.
type LoadFromDefaults struct {
	ReferenceDate time.Time
	Saved         *LoanSelection
}

func (UpdateAmount) isAction() {}
func (UpdatePeriod) isAction() {}
func (Submit) isAction() {}
func (LoadFromDefaults) isAction() {}
