package handler

import (
	"time"

	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/request"
	"github.com/dentwise/dentwise-api/internal/presentation/http/dto/response"
	"github.com/dentwise/dentwise-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Book handles POST /appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.BookAppointment(c.Request.Context(), &service.BookAppointmentInput{
		UserID:   *userID,
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Duration: req.Duration,
		Reason:   req.Reason,
	})
	if err != nil {
		bookingError(c, err)
		return
	}

	response.Created(c, "Appointment booked successfully", appointment)
}

// List handles GET /appointments (the caller's own appointments)
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	appointments, err := h.appointmentService.ListUserAppointments(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointments retrieved successfully", appointments)
}

// Get handles GET /appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), *userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved successfully", appointment)
}

// Cancel handles DELETE /appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	if err := h.appointmentService.CancelAppointment(c.Request.Context(), *userID, id, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment cancelled successfully", nil)
}

// UpdateStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateAppointmentStatus(
		c.Request.Context(), *userID, id, enum.AppointmentStatus(req.Status), IsAdmin(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment status updated successfully", appointment)
}

// Complete handles POST /admin/appointments/:id/complete
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.UpdateAppointmentStatus(
		c.Request.Context(), uuid.Nil, id, enum.AppointmentCompleted, true,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment marked as completed", appointment)
}

// ListAll handles GET /admin/appointments
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	var req request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	}
	if req.Status != "" {
		status := enum.AppointmentStatus(req.Status)
		if !status.Valid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}
	if req.DoctorID != "" {
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			response.BadRequest(c, "Invalid doctor ID filter")
			return
		}
		params.DoctorID = &doctorID
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &end
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}

// BookedSlots handles GET /doctors/:id/slots?date=YYYY-MM-DD
func (h *AppointmentHandler) BookedSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid doctor ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date query parameter is required")
		return
	}

	slots, err := h.appointmentService.BookedSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booked slots retrieved successfully", gin.H{
		"date":  date,
		"slots": slots,
	})
}

// Stats handles GET /appointments/stats (the caller's own counts)
func (h *AppointmentHandler) Stats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.appointmentService.UserStats(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment stats retrieved successfully", stats)
}
