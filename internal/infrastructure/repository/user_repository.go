package repository

import (
	"context"
	"errors"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	domainRepo "github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) UpsertByExternalID(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			// Names are seeded from claims on first sight only; after that
			// they are profile-editable and must survive the per-request sync.
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "updated_at",
			}),
		}).
		Create(user).Error
	if err != nil {
		return nil, err
	}

	// The upsert leaves user.ID at its pre-insert value when the row already
	// existed, so read the stored row back.
	var stored entity.User
	if err := r.db.WithContext(ctx).First(&stored, "external_id = ?", user.ExternalID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
