package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	domainRepo "github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("User").
		First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) List(ctx context.Context, params *domainRepo.AppointmentFilterParams) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Appointment{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.DoctorID != nil {
		query = query.Where("doctor_id = ?", *params.DoctorID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Preload("Doctor").
		Preload("User").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, time DESC").
		Find(&appointments).Error

	return appointments, total, err
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), slot, enum.ActiveAppointmentStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) ExistsForUserDoctorSlot(ctx context.Context, userID, doctorID uuid.UUID, date time.Time, slot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("user_id = ? AND doctor_id = ? AND date = ? AND time = ? AND status IN ?",
			userID, doctorID, date.Format("2006-01-02"), slot, enum.ActiveAppointmentStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) FindUserConflictAt(ctx context.Context, userID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("user_id = ? AND date = ? AND time = ? AND status IN ?",
			userID, date.Format("2006-01-02"), slot, enum.ActiveAppointmentStatuses).
		First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appointment, err
}

func (r *appointmentRepository) BookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), enum.ActiveAppointmentStatuses).
		Order("time ASC").
		Pluck("time", &slots).Error
	return slots, err
}

func (r *appointmentRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*domainRepo.AppointmentStats, error) {
	return r.stats(ctx, r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("user_id = ?", userID))
}

func (r *appointmentRepository) Stats(ctx context.Context) (*domainRepo.AppointmentStats, error) {
	return r.stats(ctx, r.db.WithContext(ctx).Model(&entity.Appointment{}))
}

func (r *appointmentRepository) stats(ctx context.Context, query *gorm.DB) (*domainRepo.AppointmentStats, error) {
	var rows []struct {
		Status enum.AppointmentStatus
		Count  int64
	}
	err := query.
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &domainRepo.AppointmentStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case enum.AppointmentConfirmed:
			stats.Confirmed = row.Count
		case enum.AppointmentCompleted:
			stats.Completed = row.Count
		}
	}
	return stats, nil
}
