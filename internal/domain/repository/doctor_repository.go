package repository

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/google/uuid"
)

// DoctorRepository defines doctor persistence operations
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	List(ctx context.Context) ([]entity.Doctor, error)
	// AppointmentCounts returns the number of appointments per doctor,
	// keyed by doctor ID.
	AppointmentCounts(ctx context.Context) (map[uuid.UUID]int64, error)
	Count(ctx context.Context) (int64, error)
}
