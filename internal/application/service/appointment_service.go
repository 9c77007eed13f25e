package service

import (
	"context"
	"time"

	"github.com/dentwise/dentwise-api/internal/application/booking"
	"github.com/dentwise/dentwise-api/internal/application/cache"
	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/enum"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/dentwise/dentwise-api/internal/events"
	"github.com/dentwise/dentwise-api/pkg/apperror"
	"github.com/dentwise/dentwise-api/pkg/pagination"
	"github.com/dentwise/dentwise-api/pkg/sanitize"
	"github.com/google/uuid"
)

// Per-step deadlines for the booking flow. The conflict check carries its
// own shared deadline inside the detector.
const (
	doctorLookupTimeout = 5 * time.Second
	createTimeout       = 5 * time.Second
)

// AppointmentService handles appointment booking and lifecycle operations
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	lock            *booking.Lock
	detector        *booking.ConflictDetector
	cache           *cache.Cache
	publisher       events.Publisher
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	lock *booking.Lock,
	detector *booking.ConflictDetector,
	c *cache.Cache,
	publisher events.Publisher,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		lock:            lock,
		detector:        detector,
		cache:           c,
		publisher:       publisher,
	}
}

// BookAppointmentInput represents the booking input
type BookAppointmentInput struct {
	UserID   uuid.UUID
	DoctorID uuid.UUID
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Duration int
	Reason   *string
}

// BookAppointment runs the full booking flow: take the per-caller slot
// lock, validate the slot against durable state, create the row, then
// invalidate affected caches before returning. The notification event is
// dispatched asynchronously; its failure never fails the booking.
func (s *AppointmentService) BookAppointment(ctx context.Context, input *BookAppointmentInput) (*entity.Appointment, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid date format, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		return nil, apperror.NewBadRequestError("Invalid time format, expected HH:MM")
	}

	// A store failure surfaces as-is so the transport layer can map it to
	// a retryable 503 (fail closed: never book without the lock).
	lockKey := booking.LockKey(input.UserID, input.Date, input.Time)
	acquired, err := s.lock.TryAcquire(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, booking.ErrAlreadyInProgress
	}
	defer s.lock.Release(ctx, lockKey)

	doctor, err := s.lookupDoctor(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := s.detector.Check(ctx, input.UserID, input.DoctorID, date, input.Time); err != nil {
		return nil, err
	}

	duration := input.Duration
	if duration <= 0 {
		duration = 30
	}
	appointment := &entity.Appointment{
		UserID:   input.UserID,
		DoctorID: input.DoctorID,
		Date:     date,
		Time:     input.Time,
		Duration: duration,
		Status:   enum.AppointmentConfirmed,
	}
	if input.Reason != nil {
		reason := sanitize.Text(*input.Reason, 500)
		appointment.Reason = &reason
	}

	createCtx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()
	if err := s.appointmentRepo.Create(createCtx, appointment); err != nil {
		if createCtx.Err() != nil {
			return nil, booking.ErrTimeout
		}
		return nil, err
	}

	s.cache.Invalidate(ctx,
		cache.UserAppointmentsKey(input.UserID),
		cache.DoctorsListKey,
	)

	created, err := s.appointmentRepo.GetByID(ctx, appointment.ID)
	if err == nil && created != nil {
		appointment = created
	}

	s.publisher.Publish(ctx, events.Event{
		Topic: events.TopicAppointmentCreated,
		Payload: events.AppointmentEvent{
			AppointmentID: appointment.ID,
			PatientEmail:  appointment.User.Email,
			PatientName:   appointment.User.FullName(),
			DoctorName:    doctor.Name,
			DoctorEmail:   doctor.Email,
			Date:          input.Date,
			Time:          input.Time,
			Reason:        derefOrEmpty(appointment.Reason),
		},
	})

	return appointment, nil
}

func (s *AppointmentService) lookupDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.Doctor, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, doctorLookupTimeout)
	defer cancel()

	doctor, err := s.doctorRepo.GetByID(lookupCtx, doctorID)
	if err != nil {
		if lookupCtx.Err() != nil {
			return nil, booking.ErrTimeout
		}
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, apperror.NewNotFoundError("Doctor")
	}
	return doctor, nil
}

// ListUserAppointments returns the user's appointments, served from the
// short-TTL cache when possible.
func (s *AppointmentService) ListUserAppointments(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	appointments, _, err := cache.ReadThrough(ctx, s.cache,
		cache.UserAppointmentsKey(userID), cache.UserAppointmentsTTL,
		func(ctx context.Context) ([]entity.Appointment, error) {
			return s.appointmentRepo.ListByUser(ctx, userID)
		})
	return appointments, err
}

// GetAppointment returns an appointment the user is allowed to see.
func (s *AppointmentService) GetAppointment(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("Appointment")
	}
	if !isAdmin && appointment.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return appointment, nil
}

// CancelAppointment removes a booking and frees its slot. Cache entries
// for the affected listings are invalidated before returning.
func (s *AppointmentService) CancelAppointment(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	appointment, err := s.GetAppointment(ctx, userID, id, isAdmin)
	if err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx,
		cache.UserAppointmentsKey(appointment.UserID),
		cache.DoctorsListKey,
	)

	s.publisher.Publish(ctx, events.Event{
		Topic: events.TopicAppointmentCancelled,
		Payload: events.AppointmentEvent{
			AppointmentID: appointment.ID,
			PatientEmail:  appointment.User.Email,
			PatientName:   appointment.User.FullName(),
			DoctorName:    appointment.Doctor.Name,
			DoctorEmail:   appointment.Doctor.Email,
			Date:          appointment.DateString(),
			Time:          appointment.Time,
		},
	})

	return nil
}

// UpdateAppointmentStatus transitions an appointment's status. The owner
// and the admin may do this; a no-op transition returns the appointment
// unchanged without emitting an event.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, userID, id uuid.UUID, status enum.AppointmentStatus, isAdmin bool) (*entity.Appointment, error) {
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Status must be CONFIRMED or COMPLETED")
	}

	appointment, err := s.GetAppointment(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}
	if appointment.Status == status {
		return appointment, nil
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	s.cache.Invalidate(ctx, cache.UserAppointmentsKey(appointment.UserID))

	topic := events.TopicAppointmentUpdated
	if status == enum.AppointmentCompleted {
		topic = events.TopicAppointmentCompleted
	}
	s.publisher.Publish(ctx, events.Event{
		Topic: topic,
		Payload: events.AppointmentEvent{
			AppointmentID: appointment.ID,
			PatientEmail:  appointment.User.Email,
			PatientName:   appointment.User.FullName(),
			DoctorName:    appointment.Doctor.Name,
			Date:          appointment.DateString(),
			Time:          appointment.Time,
		},
	})

	return appointment, nil
}

// ListAppointments returns the admin view over all appointments.
func (s *AppointmentService) ListAppointments(ctx context.Context, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	appointments, total, err := s.appointmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(appointments, pag), nil
}

// BookedSlots returns the occupied slots for a doctor on a date so the
// client can grey them out.
func (s *AppointmentService) BookedSlots(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid date format, expected YYYY-MM-DD")
	}
	return s.appointmentRepo.BookedSlots(ctx, doctorID, date)
}

// UserStats returns the caller's appointment counts by status.
func (s *AppointmentService) UserStats(ctx context.Context, userID uuid.UUID) (*repository.AppointmentStats, error) {
	return s.appointmentRepo.StatsByUser(ctx, userID)
}

// Stats returns platform-wide appointment counts by status.
func (s *AppointmentService) Stats(ctx context.Context) (*repository.AppointmentStats, error) {
	return s.appointmentRepo.Stats(ctx)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
