package repository

import (
	"context"
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/dentwise/dentwise-api/pkg/pagination"
	"github.com/google/uuid"
)

// AppointmentFilterParams represents appointment filter parameters for admin listings
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.AppointmentStatus
	DoctorID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// AppointmentStats aggregates a user's appointment counts by status.
type AppointmentStats struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
}

// AppointmentRepository defines appointment persistence operations.
//
// The three existence checks are the conflict detector's source of truth:
// each considers only appointments whose status occupies a slot
// (CONFIRMED or COMPLETED).
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error)
	List(ctx context.Context, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsForSlot reports whether any patient holds the doctor's slot.
	ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (bool, error)
	// ExistsForUserDoctorSlot reports whether this user already holds this
	// exact slot with this doctor.
	ExistsForUserDoctorSlot(ctx context.Context, userID, doctorID uuid.UUID, date time.Time, slot string) (bool, error)
	// FindUserConflictAt returns the user's appointment at the given
	// date/time with any doctor (doctor preloaded for the error message),
	// or nil if none exists.
	FindUserConflictAt(ctx context.Context, userID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error)

	// BookedSlots returns the occupied time slots for a doctor on a date,
	// ordered ascending.
	BookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)

	StatsByUser(ctx context.Context, userID uuid.UUID) (*AppointmentStats, error)
	Stats(ctx context.Context) (*AppointmentStats, error)
}
