package entity

import (
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor represents a practitioner patients can book appointments with.
type Doctor struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Name       string      `gorm:"size:255;not null" json:"name"`
	Email      string      `gorm:"size:255;unique;not null" json:"email"`
	Phone      string      `gorm:"size:50" json:"phone"`
	Speciality string      `gorm:"size:100;not null" json:"speciality"`
	Bio        *string     `gorm:"type:text" json:"bio,omitempty"`
	ImageURL   string      `gorm:"size:500" json:"image_url"`
	Gender     enum.Gender `gorm:"size:10;not null" json:"gender"`
	IsActive   bool        `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// BeforeCreate generates a UUID before inserting a new doctor
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Doctor model
func (Doctor) TableName() string {
	return "doctors"
}
