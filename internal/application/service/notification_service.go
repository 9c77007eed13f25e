package service

import (
	"context"
	"log"

	"github.com/dentwise/dentwise-api/internal/events"
	"github.com/dentwise/dentwise-api/pkg/email"
)

// NotificationService turns appointment events into patient emails. It
// hangs off the event dispatcher so email latency and failures never touch
// the booking path.
type NotificationService struct {
	email *email.EmailService
}

// NewNotificationService creates a new notification service
func NewNotificationService(emailService *email.EmailService) *NotificationService {
	return &NotificationService{email: emailService}
}

// Register subscribes the notification handlers on the dispatcher.
func (s *NotificationService) Register(dispatcher *events.Dispatcher) {
	dispatcher.Subscribe(events.TopicAppointmentCreated, s.onAppointmentCreated)
	dispatcher.Subscribe(events.TopicAppointmentCancelled, s.onAppointmentCancelled)
}

func (s *NotificationService) onAppointmentCreated(ctx context.Context, event events.Event) {
	payload, ok := event.Payload.(events.AppointmentEvent)
	if !ok || payload.PatientEmail == "" {
		return
	}

	err := s.email.SendAppointmentConfirmation(ctx, payload.PatientEmail, email.AppointmentEmailData{
		PatientName: payload.PatientName,
		DoctorName:  payload.DoctorName,
		Date:        payload.Date,
		Time:        payload.Time,
		Reason:      payload.Reason,
	})
	if err != nil {
		log.Printf("notification: confirmation email to %s failed: %v", payload.PatientEmail, err)
	}
}

func (s *NotificationService) onAppointmentCancelled(ctx context.Context, event events.Event) {
	payload, ok := event.Payload.(events.AppointmentEvent)
	if !ok || payload.PatientEmail == "" {
		return
	}

	err := s.email.SendAppointmentCancellation(ctx, payload.PatientEmail, email.AppointmentEmailData{
		PatientName: payload.PatientName,
		DoctorName:  payload.DoctorName,
		Date:        payload.Date,
		Time:        payload.Time,
	})
	if err != nil {
		log.Printf("notification: cancellation email to %s failed: %v", payload.PatientEmail, err)
	}
}
