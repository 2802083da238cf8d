package scheduling

import (
	"context"
	"time"

	intervalRepo "autoshop/database/repository/interval"
	"autoshop/models"
)

// CommitFunc persists an admitted interval. The engine never writes the
// store itself; it invokes the caller's commit while still holding the
// owner's admission lock so no competing booking can slip in between the
// conflict read and the write.
type CommitFunc func(ctx context.Context) error

// SchedulingEngine computes free slots and guards interval writes.
type SchedulingEngine interface {
	// AvailableSlots returns free appointment start times for the given
	// day and service type. Unknown service types use the default
	// duration.
	AvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]time.Time, error)
	// AdmitBooking decides whether a shop booking may be persisted.
	// excludeID lets a rescheduled appointment ignore its own record.
	AdmitBooking(ctx context.Context, candidate models.Interval, excludeID string, commit CommitFunc) (Decision, error)
	// AdmitTimerStart decides whether an employee time-log entry (a fresh
	// timer start or a back-dated manual entry) may be persisted.
	AdmitTimerStart(ctx context.Context, employeeID string, candidate models.Interval, commit CommitFunc) (Decision, error)
	// StopTimer closes the employee's open timer at the current time and
	// returns the completed interval.
	StopTimer(ctx context.Context, employeeID string) (*models.Interval, error)
}

// DefaultSchedulingEngine is the production implementation. It holds no
// state between calls and is safe for concurrent use across owners.
type DefaultSchedulingEngine struct {
	Repo   intervalRepo.IntervalRepository
	Locker AdmissionLocker
	Clock  Clock
	Slots  SlotConfig
}

func (e *DefaultSchedulingEngine) clock() Clock {
	if e.Clock == nil {
		return SystemClock()
	}
	return e.Clock
}

// AvailableSlots fetches the day's blocking shop bookings and runs the
// slot generator over them.
func (e *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, date time.Time, serviceType string) ([]time.Time, error) {
	existing, err := e.Repo.ListShopForDay(ctx, date)
	if err != nil {
		return nil, err
	}
	return GenerateSlots(date, models.ServiceDuration(serviceType), e.Slots, existing)
}
