package service

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/application/cache"
	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/dentwise/dentwise-api/pkg/apperror"
	"github.com/dentwise/dentwise-api/pkg/sanitize"
	"github.com/google/uuid"
)

// DoctorService handles the doctor roster
type DoctorService struct {
	doctorRepo repository.DoctorRepository
	cache      *cache.Cache
}

// NewDoctorService creates a new doctor service
func NewDoctorService(doctorRepo repository.DoctorRepository, c *cache.Cache) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo, cache: c}
}

// ListDoctors returns the active roster, served from the short-TTL cache
// when possible.
func (s *DoctorService) ListDoctors(ctx context.Context) ([]entity.Doctor, error) {
	doctors, _, err := cache.ReadThrough(ctx, s.cache,
		cache.DoctorsListKey, cache.DoctorsListTTL,
		func(ctx context.Context) ([]entity.Doctor, error) {
			return s.doctorRepo.List(ctx)
		})
	return doctors, err
}

// GetDoctor retrieves a doctor by ID
func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewNotFoundError("Doctor")
	}
	return doctor, nil
}

// CreateDoctorInput represents the create doctor input
type CreateDoctorInput struct {
	Name       string
	Email      string
	Phone      string
	Speciality string
	Bio        *string
	ImageURL   string
	Gender     enum.Gender
}

// CreateDoctor adds a doctor to the roster. Admin only; routes enforce that.
func (s *DoctorService) CreateDoctor(ctx context.Context, input *CreateDoctorInput) (*entity.Doctor, error) {
	if !input.Gender.Valid() {
		return nil, apperror.NewBadRequestError("Gender must be MALE or FEMALE")
	}

	existing, err := s.doctorRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A doctor with this email already exists")
	}

	doctor := &entity.Doctor{
		Name:       sanitize.Line(input.Name, 255),
		Email:      input.Email,
		Phone:      input.Phone,
		Speciality: sanitize.Line(input.Speciality, 100),
		ImageURL:   input.ImageURL,
		Gender:     input.Gender,
		IsActive:   true,
	}
	if input.Bio != nil {
		bio := sanitize.Text(*input.Bio, 2000)
		doctor.Bio = &bio
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.DoctorsListKey)
	return doctor, nil
}

// UpdateDoctorInput represents the update doctor input
type UpdateDoctorInput struct {
	ID         uuid.UUID
	Name       *string
	Phone      *string
	Speciality *string
	Bio        *string
	ImageURL   *string
	IsActive   *bool
}

// UpdateDoctor updates roster details. Admin only; routes enforce that.
func (s *DoctorService) UpdateDoctor(ctx context.Context, input *UpdateDoctorInput) (*entity.Doctor, error) {
	doctor, err := s.GetDoctor(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = sanitize.Line(*input.Name, 255)
	}
	if input.Phone != nil {
		doctor.Phone = *input.Phone
	}
	if input.Speciality != nil {
		doctor.Speciality = sanitize.Line(*input.Speciality, 100)
	}
	if input.Bio != nil {
		bio := sanitize.Text(*input.Bio, 2000)
		doctor.Bio = &bio
	}
	if input.ImageURL != nil {
		doctor.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		doctor.IsActive = *input.IsActive
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.DoctorsListKey)
	return doctor, nil
}

// DoctorWithLoad pairs a doctor with their total appointment count.
type DoctorWithLoad struct {
	entity.Doctor
	AppointmentCount int64 `json:"appointment_count"`
}

// ListDoctorsWithLoad returns the full roster with per-doctor appointment
// counts for the admin dashboard.
func (s *DoctorService) ListDoctorsWithLoad(ctx context.Context) ([]DoctorWithLoad, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.doctorRepo.AppointmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]DoctorWithLoad, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, DoctorWithLoad{Doctor: d, AppointmentCount: counts[d.ID]})
	}
	return result, nil
}
