package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cache TTLs, chosen by volatility: appointment lists change often,
// doctor profiles rarely.
const (
	UserAppointmentsTTL = 30 * time.Second
	DoctorsListTTL      = 60 * time.Second
)

// DoctorsListKey caches the global doctor listing.
const DoctorsListKey = "doctors:list"

// UserAppointmentsKey caches one user's appointment list.
func UserAppointmentsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:appointments", userID)
}
