package repository

import (
	"context"
	"errors"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	domainRepo "github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doctor, err
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doctor, err
}

func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

func (r *doctorRepository) List(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) AppointmentCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		DoctorID uuid.UUID
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Select("doctor_id, COUNT(*) as count").
		Group("doctor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.DoctorID] = row.Count
	}
	return counts, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Count(&count).Error
	return count, err
}
