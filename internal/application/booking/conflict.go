package booking

import (
	"context"
	"errors"
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CheckTimeout is the shared deadline for all three conflict queries.
const CheckTimeout = 10 * time.Second

// ConflictDetector validates a candidate slot against durable state. It is
// the final authority on the single-booking invariant: at most one
// CONFIRMED/COMPLETED appointment per (doctor, date, time), and at most one
// per (user, date, time) regardless of doctor.
type ConflictDetector struct {
	appointments repository.AppointmentRepository
	timeout      time.Duration
}

// NewConflictDetector creates a detector over the appointment repository.
func NewConflictDetector(appointments repository.AppointmentRepository) *ConflictDetector {
	return &ConflictDetector{appointments: appointments, timeout: CheckTimeout}
}

// Check runs the three existence queries concurrently under one shared
// deadline. If the deadline elapses before all three resolve, the whole
// attempt fails with ErrTimeout rather than partially validating.
//
// Once all results are in, evaluation order is fixed: doctor-slot-taken
// first (the generic conflict), then the exact duplicate with the same
// doctor, then the cross-doctor conflict (which names the other doctor).
func (d *ConflictDetector) Check(ctx context.Context, userID, doctorID uuid.UUID, date time.Time, slot string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var (
		slotTaken     bool
		duplicate     bool
		crossConflict *entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		slotTaken, err = d.appointments.ExistsForSlot(gctx, doctorID, date, slot)
		return err
	})

	g.Go(func() error {
		var err error
		duplicate, err = d.appointments.ExistsForUserDoctorSlot(gctx, userID, doctorID, date, slot)
		return err
	})

	g.Go(func() error {
		var err error
		crossConflict, err = d.appointments.FindUserConflictAt(gctx, userID, date, slot)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}

	if slotTaken {
		return &ConflictError{Kind: DoctorSlotTaken}
	}
	if duplicate {
		return &ConflictError{Kind: DuplicateWithDoctor}
	}
	if crossConflict != nil {
		return &ConflictError{Kind: CrossDoctorConflict, DoctorName: crossConflict.Doctor.Name}
	}
	return nil
}
