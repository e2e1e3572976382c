package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrPolicyNotFound       = errors.New("Leave policy not found")
)

// InsufficientBalanceError is returned when a PTO submission exceeds the
// remaining allowance for the current leave year.
type InsufficientBalanceError struct {
	Requested int
	Remaining int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient PTO balance: requested %d day(s) but only %d remaining", e.Requested, e.Remaining)
}

// InsufficientCompTimeError is returned when a COMP submission exceeds the
// available comp-time minutes. Hours are floored for the message.
type InsufficientCompTimeError struct {
	AvailableMinutes int
	NeededMinutes    int
}

func (e *InsufficientCompTimeError) Error() string {
	return fmt.Sprintf("Insufficient comp time: %dh available, %dh needed", e.AvailableMinutes/60, e.NeededMinutes/60)
}
