// File: services/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

// Fault codes. Booking conflicts re-prompt an earlier conversation state;
// cancellation conflicts surface as user-facing notices.
const (
	FaultSlotUnavailable  = "slot_unavailable"
	FaultExistingSameDay  = "existing_same_day"
	FaultAlreadyQueued    = "already_queued"
	FaultNotFound         = "not_found"
	FaultNotOwned         = "not_owned"
	FaultAlreadyCancelled = "already_cancelled"
	FaultPast             = "past"
	FaultTooClose         = "too_close"
)

// Fault is a structured, recoverable booking outcome. It crosses component
// boundaries as data: callers branch on Code, never on message text.
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// NewFault builds a Fault with the given code.
func NewFault(code, msg string) *Fault {
	return &Fault{Code: code, Message: msg}
}

// AsFault extracts a Fault from err, or nil when err is fatal/absent.
func AsFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return nil
}
