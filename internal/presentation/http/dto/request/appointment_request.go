package request

import "github.com/google/uuid"

// BookAppointmentRequest represents an appointment booking request
type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Date     string    `json:"date" binding:"required"`
	Time     string    `json:"time" binding:"required"`
	Duration int       `json:"duration" binding:"omitempty,min=15,max=120"`
	Reason   *string   `json:"reason" binding:"omitempty,max=500"`
}

// UpdateAppointmentStatusRequest represents a status transition request
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED COMPLETED"`
}

// AppointmentFilterRequest represents admin appointment filter parameters
type AppointmentFilterRequest struct {
	Status    string `form:"status"`
	DoctorID  string `form:"doctor_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
