// Package events carries fire-and-forget side effects out of the request
// path. A successful booking must return immediately; notification and
// analytics work is dispatched asynchronously and its failure is logged,
// never propagated to the caller.
package events

import (
	"context"

	"github.com/google/uuid"
)

// Topics for appointment and video lifecycle events.
const (
	TopicAppointmentCreated   = "appointment.created"
	TopicAppointmentUpdated   = "appointment.updated"
	TopicAppointmentCancelled = "appointment.cancelled"
	TopicAppointmentCompleted = "appointment.completed"
	TopicVideoProgressUpdated = "video.progress-updated"
)

// Event is one dispatched occurrence.
type Event struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// AppointmentEvent is the payload for all appointment topics.
type AppointmentEvent struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientEmail  string    `json:"patient_email"`
	PatientName   string    `json:"patient_name"`
	DoctorName    string    `json:"doctor_name"`
	DoctorEmail   string    `json:"doctor_email"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Reason        string    `json:"reason"`
}

// VideoProgressEvent is the payload for video progress topics.
type VideoProgressEvent struct {
	UserID          uuid.UUID `json:"user_id"`
	VideoID         uuid.UUID `json:"video_id"`
	LastPosition    float64   `json:"last_position"`
	WatchedDuration float64   `json:"watched_duration"`
	Completed       bool      `json:"completed"`
}

// Publisher dispatches events asynchronously. Implementations swallow and
// log delivery failures; Publish never blocks the request path on the
// downstream system.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
