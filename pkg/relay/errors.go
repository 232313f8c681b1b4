package relay

import "errors"

var (
	// ErrMissingFields is returned when html or the recipient is empty.
	ErrMissingFields = errors.New("missing required fields: html, recipientEmail")

	// ErrSendInProgress is returned while another send to the same recipient is running.
	ErrSendInProgress = errors.New("a send to this recipient is already in progress")
)
