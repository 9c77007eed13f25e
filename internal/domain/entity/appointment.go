package entity

import (
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment occupies one (doctor, date, time) slot. The single-booking
// invariant is enforced by the conflict detector at write time, not by a
// database constraint, so the slot columns carry plain (non-unique) indexes.
type Appointment struct {
	ID       uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID              `gorm:"type:uuid;not null;index:idx_appointments_user_slot" json:"user_id"`
	DoctorID uuid.UUID              `gorm:"type:uuid;not null;index:idx_appointments_doctor_slot" json:"doctor_id"`
	Date     time.Time              `gorm:"type:date;not null;index:idx_appointments_doctor_slot;index:idx_appointments_user_slot" json:"date"`
	Time     string                 `gorm:"size:5;not null;index:idx_appointments_doctor_slot;index:idx_appointments_user_slot" json:"time"`
	Duration int                    `gorm:"default:30" json:"duration"`
	Status   enum.AppointmentStatus `gorm:"size:20;not null;default:CONFIRMED" json:"status"`
	Reason   *string                `gorm:"type:text" json:"reason,omitempty"`
	Notes    *string                `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// DateString formats the appointment date as YYYY-MM-DD for API responses.
func (a *Appointment) DateString() string {
	return a.Date.Format("2006-01-02")
}

// BeforeCreate generates a UUID before inserting a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
