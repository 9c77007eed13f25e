package service

import (
	"context"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/dentwise/dentwise-api/pkg/apperror"
	"github.com/dentwise/dentwise-api/pkg/identity"
	"github.com/dentwise/dentwise-api/pkg/sanitize"
	"github.com/google/uuid"
)

// UserService handles patient accounts mirrored from the identity provider
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncFromClaims upserts the local user row from verified token claims.
// Called on every authenticated request; email tracks the provider, while
// names are seeded on first sight and stay profile-editable afterwards.
func (s *UserService) SyncFromClaims(ctx context.Context, claims *identity.Claims) (*entity.User, error) {
	user := &entity.User{
		ExternalID: claims.ExternalID,
		Email:      claims.Email,
	}
	if claims.FirstName != "" {
		first := sanitize.Line(claims.FirstName, 100)
		user.FirstName = &first
	}
	if claims.LastName != "" {
		last := sanitize.Line(claims.LastName, 100)
		user.LastName = &last
	}

	return s.userRepo.UpsertByExternalID(ctx, user)
}

// UpdateProfileInput represents the profile fields a user may edit. Email
// stays authoritative at the identity provider and is not editable here.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// UpdateProfile updates the caller's editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		first := sanitize.Line(*input.FirstName, 100)
		user.FirstName = &first
	}
	if input.LastName != nil {
		last := sanitize.Line(*input.LastName, 100)
		user.LastName = &last
	}
	if input.Phone != nil {
		phone := sanitize.Line(*input.Phone, 30)
		user.Phone = &phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// Count returns the number of registered patients.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
