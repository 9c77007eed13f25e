package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a patient account. Identity lives with the external
// identity provider; ExternalID is the provider's stable subject and the
// row is upserted from token claims on every authenticated request.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ExternalID string    `gorm:"size:255;unique;not null" json:"-"`
	Email      string    `gorm:"size:255;unique;not null" json:"email"`
	FirstName  *string   `gorm:"size:100" json:"first_name,omitempty"`
	LastName   *string   `gorm:"size:100" json:"last_name,omitempty"`
	Phone      *string   `gorm:"size:30" json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Appointments []Appointment `gorm:"foreignKey:UserID" json:"-"`
}

// FullName joins first and last name, tolerating either being unset.
func (u *User) FullName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	return strings.Join(parts, " ")
}

// BeforeCreate generates a UUID before inserting a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
