package scheduling

import (
	"context"
	"fmt"
	"time"

	"autoshop/models"

	"go.uber.org/zap"

	"autoshop/utils"
)

const (
	shopLockPrefix     = "shop:"
	employeeLockPrefix = "emp:"
)

func shopLockKey(start time.Time) string {
	return shopLockPrefix + start.UTC().Format("2006-01-02")
}

// AdmitBooking is the write-path check for shop appointments, run
// immediately before the caller persists. It re-reads the candidate day's
// bookings under the shop-day admission lock and rejects on the first
// overlap found. Rejections are Decision values; only input validation and
// store failures return errors.
func (e *DefaultSchedulingEngine) AdmitBooking(ctx context.Context, candidate models.Interval, excludeID string, commit CommitFunc) (Decision, error) {
	if candidate.OwnerKind != models.OwnerShop {
		return Decision{}, ErrWrongOwnerKind
	}
	if candidate.Start.IsZero() {
		return Decision{}, ErrMissingStart
	}
	if candidate.End == nil {
		return Decision{}, ErrMissingEnd
	}
	if !candidate.End.After(candidate.Start) {
		return Decision{}, ErrEndNotAfterStart
	}

	release, err := e.Locker.Acquire(ctx, shopLockKey(candidate.Start))
	if err != nil {
		return Decision{}, err
	}
	defer release()

	existing, err := e.Repo.ListShopForDay(ctx, candidate.Start)
	if err != nil {
		return Decision{}, err
	}

	for _, iv := range existing {
		if iv.ID == excludeID || !iv.Blocking() {
			continue
		}
		if Overlaps(candidate, iv) {
			utils.GetLogger().Info("booking rejected: slot conflict",
				zap.String("candidateID", candidate.ID),
				zap.String("conflictID", iv.ID))
			return rejectedConflict(iv.ID), nil
		}
	}

	if commit != nil {
		if err := commit(ctx); err != nil {
			return Decision{}, fmt.Errorf("booking commit failed: %w", err)
		}
	}
	return accepted(), nil
}

// AdmitTimerStart is the write-path check for employee time-log entries.
// An employee may have at most one open timer; a second start is rejected
// with the active entry's id so the caller can surface it. Bounded
// (manually entered) candidates are tested with TimerOverlapRule against
// every blocking entry; an open candidate is treated as unbounded from its
// start.
func (e *DefaultSchedulingEngine) AdmitTimerStart(ctx context.Context, employeeID string, candidate models.Interval, commit CommitFunc) (Decision, error) {
	if employeeID == "" {
		return Decision{}, ErrMissingOwner
	}
	if candidate.OwnerKind != models.OwnerEmployee || candidate.OwnerID != employeeID {
		return Decision{}, ErrWrongOwnerKind
	}
	if candidate.Start.IsZero() {
		return Decision{}, ErrMissingStart
	}
	if candidate.End != nil && !candidate.End.After(candidate.Start) {
		return Decision{}, ErrEndNotAfterStart
	}

	release, err := e.Locker.Acquire(ctx, employeeLockPrefix+employeeID)
	if err != nil {
		return Decision{}, err
	}
	defer release()

	active, err := e.Repo.FindActiveTimer(ctx, employeeID)
	if err != nil {
		return Decision{}, err
	}
	if active != nil {
		utils.GetLogger().Info("timer start rejected: timer already running",
			zap.String("employeeID", employeeID),
			zap.String("activeTimerID", active.ID))
		return rejectedAlreadyActive(active.ID), nil
	}

	from, to := dayRangeFor(candidate)
	existing, err := e.Repo.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return Decision{}, err
	}

	for _, iv := range existing {
		if iv.ID == candidate.ID || !iv.Blocking() {
			continue
		}
		if timerCandidateOverlaps(candidate, iv) {
			utils.GetLogger().Info("time-log entry rejected: overlap",
				zap.String("employeeID", employeeID),
				zap.String("conflictID", iv.ID))
			return rejectedConflict(iv.ID), nil
		}
	}

	if commit != nil {
		if err := commit(ctx); err != nil {
			return Decision{}, fmt.Errorf("time-log commit failed: %w", err)
		}
	}
	return accepted(), nil
}

// StopTimer completes the employee's open timer at now.
func (e *DefaultSchedulingEngine) StopTimer(ctx context.Context, employeeID string) (*models.Interval, error) {
	if employeeID == "" {
		return nil, ErrMissingOwner
	}

	release, err := e.Locker.Acquire(ctx, employeeLockPrefix+employeeID)
	if err != nil {
		return nil, err
	}
	defer release()

	active, err := e.Repo.FindActiveTimer(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveTimer
	}

	end := e.clock().Now()
	if err := e.Repo.Complete(ctx, active.ID, end); err != nil {
		return nil, err
	}

	active.End = &end
	active.Status = models.IntervalCompleted
	return active, nil
}

// timerCandidateOverlaps applies the explicit four-case rule for bounded
// candidates; an open candidate blocks from its start onward.
func timerCandidateOverlaps(candidate, existing models.Interval) bool {
	if candidate.End != nil {
		return TimerOverlapRule(candidate.Start, *candidate.End, existing)
	}
	return Overlaps(candidate, existing)
}

// dayRangeFor bounds the store read for a timer admission: the UTC day of
// the candidate, widened to its explicit end when a back-dated entry spans
// midnight. Open entries are returned by the store regardless.
func dayRangeFor(candidate models.Interval) (time.Time, time.Time) {
	y, m, d := candidate.Start.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	if candidate.End != nil && candidate.End.After(to) {
		to = candidate.End.UTC()
	}
	return from, to
}
