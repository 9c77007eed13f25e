package service

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/repository"
)

// DashboardService aggregates platform-wide numbers for the admin overview
type DashboardService struct {
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	videoRepo       repository.VideoRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
) *DashboardService {
	return &DashboardService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		videoRepo:       videoRepo,
	}
}

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	Appointments *repository.AppointmentStats `json:"appointments"`
	Patients     int64                        `json:"patients"`
	Doctors      int64                        `json:"doctors"`
	Videos       int64                        `json:"videos"`
}

// Stats gathers the overview numbers.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	appointments, err := s.appointmentRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Appointments: appointments,
		Patients:     patients,
		Doctors:      doctors,
		Videos:       videos,
	}, nil
}
