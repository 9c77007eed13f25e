package repository

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/google/uuid"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	// UpsertByExternalID creates the user on first sight of the identity
	// provider's subject, or refreshes profile fields on subsequent
	// requests, and returns the stored row.
	UpsertByExternalID(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
