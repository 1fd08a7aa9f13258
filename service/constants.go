package service

import "time"

const (
	// DefaultDismissDelay is how long the success banner stays before the
	// status is cleared.
	DefaultDismissDelay = 2 * time.Second

	MsgEncodeFailed = "Failed to encode data"
	MsgServerError  = "Server error"
)
