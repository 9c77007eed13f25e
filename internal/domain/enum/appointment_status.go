package enum

// AppointmentStatus represents the lifecycle state of an appointment.
// Stored as text; only CONFIRMED and COMPLETED count towards slot conflicts.
type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// ActiveAppointmentStatuses are the statuses that occupy a slot.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentConfirmed,
	AppointmentCompleted,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentConfirmed, AppointmentCompleted:
		return true
	}
	return false
}

func (s AppointmentStatus) String() string {
	return string(s)
}
