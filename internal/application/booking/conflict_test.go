package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConflictRepo implements the three detector queries; the embedded
// interface panics for anything else.
type fakeConflictRepo struct {
	repository.AppointmentRepository

	slotTaken bool
	duplicate bool
	conflict  *entity.Appointment

	err   error
	delay time.Duration
}

func (f *fakeConflictRepo) ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) (bool, error) {
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	return f.slotTaken, f.err
}

func (f *fakeConflictRepo) ExistsForUserDoctorSlot(ctx context.Context, userID, doctorID uuid.UUID, date time.Time, slot string) (bool, error) {
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	return f.duplicate, f.err
}

func (f *fakeConflictRepo) FindUserConflictAt(ctx context.Context, userID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.conflict, f.err
}

func (f *fakeConflictRepo) wait(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func detectorOver(repo *fakeConflictRepo, timeout time.Duration) *ConflictDetector {
	return &ConflictDetector{appointments: repo, timeout: timeout}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestCheckAllClear(t *testing.T) {
	d := detectorOver(&fakeConflictRepo{}, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	assert.NoError(t, err)
}

func TestCheckDoctorSlotTaken(t *testing.T) {
	d := detectorOver(&fakeConflictRepo{slotTaken: true}, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, DoctorSlotTaken, ce.Kind)
	assert.Contains(t, ce.Error(), "already booked with this doctor")
}

func TestCheckDuplicateWithDoctor(t *testing.T) {
	d := detectorOver(&fakeConflictRepo{duplicate: true}, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, DuplicateWithDoctor, ce.Kind)
}

func TestCheckCrossDoctorNamesDoctor(t *testing.T) {
	other := &entity.Appointment{Doctor: entity.Doctor{Name: "Sarah Chen"}}
	d := detectorOver(&fakeConflictRepo{conflict: other}, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, CrossDoctorConflict, ce.Kind)
	assert.Contains(t, ce.Error(), "Dr. Sarah Chen")
}

func TestCheckEvaluationOrderFixed(t *testing.T) {
	// When several checks trip at once, the doctor-slot conflict wins,
	// then the exact duplicate, then the cross-doctor conflict.
	repo := &fakeConflictRepo{
		slotTaken: true,
		duplicate: true,
		conflict:  &entity.Appointment{Doctor: entity.Doctor{Name: "Sarah Chen"}},
	}
	d := detectorOver(repo, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, DoctorSlotTaken, ce.Kind)

	repo.slotTaken = false
	err = d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	ce, ok = IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, DuplicateWithDoctor, ce.Kind)
}

func TestCheckTimesOutAsAWhole(t *testing.T) {
	repo := &fakeConflictRepo{delay: 200 * time.Millisecond}
	d := detectorOver(repo, 20*time.Millisecond)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCheckPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	d := detectorOver(&fakeConflictRepo{err: boom}, time.Second)

	err := d.Check(context.Background(), uuid.New(), uuid.New(), mustDate(t, "2025-06-01"), "09:00")
	assert.ErrorIs(t, err, boom)

	_, ok := IsConflict(err)
	assert.False(t, ok)
}
