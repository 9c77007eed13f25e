package handler

import (
	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/request"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DoctorHandler handles doctor roster endpoints
type DoctorHandler struct {
	doctorService *service.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// List handles GET /doctors
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.doctorService.ListDoctors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Doctors retrieved successfully", doctors)
}

// Get handles GET /doctors/:id
func (h *DoctorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Doctor retrieved successfully", doctor)
}

// Create handles POST /admin/doctors
func (h *DoctorHandler) Create(c *gin.Context) {
	var req request.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), &service.CreateDoctorInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Speciality: req.Speciality,
		Bio:        req.Bio,
		ImageURL:   req.ImageURL,
		Gender:     enum.Gender(req.Gender),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Doctor created successfully", doctor)
}

// Update handles PUT /admin/doctors/:id
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	var req request.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Request.Context(), &service.UpdateDoctorInput{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		Speciality: req.Speciality,
		Bio:        req.Bio,
		ImageURL:   req.ImageURL,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Doctor updated successfully", doctor)
}

// ListWithLoad handles GET /admin/doctors (roster with appointment counts)
func (h *DoctorHandler) ListWithLoad(c *gin.Context) {
	doctors, err := h.doctorService.ListDoctorsWithLoad(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Doctors retrieved successfully", doctors)
}
