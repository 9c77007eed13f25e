package booking

import (
	"errors"
	"fmt"
)

// ErrAlreadyInProgress means the caller already holds the booking lock for
// this slot; the client should retry shortly.
var ErrAlreadyInProgress = errors.New("A booking request is already being processed. Please wait.")

// ErrTimeout means a bounded phase of the booking attempt exceeded its
// deadline. Retryable.
var ErrTimeout = errors.New("The booking service took too long to respond. Please try again.")

// ConflictKind identifies which durable-state check rejected the booking.
type ConflictKind int

const (
	// DoctorSlotTaken: another patient holds the doctor's slot.
	DoctorSlotTaken ConflictKind = iota + 1
	// DuplicateWithDoctor: this user already holds this exact slot with
	// this doctor.
	DuplicateWithDoctor
	// CrossDoctorConflict: this user is booked with a different doctor at
	// the same time.
	CrossDoctorConflict
)

// ConflictError is a terminal validation failure; it is never retried
// automatically and its message names the specific conflict.
type ConflictError struct {
	Kind ConflictKind
	// DoctorName is set for CrossDoctorConflict only.
	DoctorName string
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case DoctorSlotTaken:
		return "This time slot is already booked with this doctor. Please choose another time."
	case DuplicateWithDoctor:
		return "You already have an appointment with this doctor at this time."
	case CrossDoctorConflict:
		return fmt.Sprintf("You already have an appointment with Dr. %s at this time. Please choose a different time slot.", e.DoctorName)
	}
	return "This time slot is not available."
}

// IsConflict reports whether err is a slot conflict and returns it if so.
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
