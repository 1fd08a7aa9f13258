package domain

// StatusKind tags the variant held by SubmitStatus.
type StatusKind int

const (
	// StatusNone means no submission is in flight and no banner is shown.
	StatusNone StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "none"
	}
}

// SubmitStatus is the state of the current loan application submission.
// Message is only meaningful for StatusError.
type SubmitStatus struct {
	Kind    StatusKind
	Message string
}

func NoStatus() SubmitStatus { return SubmitStatus{} }

func Loading() SubmitStatus { return SubmitStatus{Kind: StatusLoading} }

func Success() SubmitStatus { return SubmitStatus{Kind: StatusSuccess} }

func Failure(message string) SubmitStatus {
	return SubmitStatus{Kind: StatusError, Message: message}
}

func (s SubmitStatus) IsNone() bool { return s.Kind == StatusNone }
func (s SubmitStatus) IsLoading() bool { return s.Kind == StatusLoading }

func (s SubmitStatus) String() string {
	if s.Kind == StatusError {
		return "error: " + s.Message
	}
	return s.Kind.String()
}
