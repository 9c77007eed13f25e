package request

// CreateDoctorRequest represents a doctor creation request
type CreateDoctorRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone" binding:"omitempty,max=50"`
	Speciality string  `json:"speciality" binding:"required,max=100"`
	Bio        *string `json:"bio" binding:"omitempty,max=2000"`
	ImageURL   string  `json:"image_url" binding:"omitempty,url,max=500"`
	Gender     string  `json:"gender" binding:"required,oneof=MALE FEMALE"`
}

// UpdateDoctorRequest represents a doctor update request
type UpdateDoctorRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Speciality *string `json:"speciality" binding:"omitempty,max=100"`
	Bio        *string `json:"bio" binding:"omitempty,max=2000"`
	ImageURL   *string `json:"image_url" binding:"omitempty,url,max=500"`
	IsActive   *bool   `json:"is_active"`
}
