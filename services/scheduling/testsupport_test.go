package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"autoshop/models"
)

// fakeIntervalRepo is an in-memory IntervalRepository for engine tests.
type fakeIntervalRepo struct {
	mu        sync.Mutex
	intervals map[string]models.Interval
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{intervals: make(map[string]models.Interval)}
}

func (f *fakeIntervalRepo) Create(_ context.Context, iv models.Interval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iv.Status == "" {
		iv.Status = models.IntervalActive
	}
	f.intervals[iv.ID] = iv
	return nil
}

func (f *fakeIntervalRepo) GetByID(_ context.Context, id string) (*models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[id]
	if !ok {
		return nil, fmt.Errorf("interval %s not found", id)
	}
	return &iv, nil
}

func (f *fakeIntervalRepo) ListShopForDay(_ context.Context, day time.Time) ([]models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	y, m, d := day.UTC().Date()
	var out []models.Interval
	for _, iv := range f.intervals {
		iy, im, id := iv.Start.UTC().Date()
		if iv.OwnerKind == models.OwnerShop && iv.Status != models.IntervalCancelled &&
			iy == y && im == m && id == d {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeIntervalRepo) ListForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Interval
	for _, iv := range f.intervals {
		if iv.OwnerKind != models.OwnerEmployee || iv.OwnerID != employeeID ||
			iv.Status == models.IntervalCancelled {
			continue
		}
		if iv.End == nil || (iv.Start.Before(to) && iv.End.After(from)) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeIntervalRepo) FindActiveTimer(_ context.Context, employeeID string) (*models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.intervals {
		if iv.OwnerKind == models.OwnerEmployee && iv.OwnerID == employeeID &&
			iv.Status == models.IntervalActive && iv.End == nil {
			out := iv
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeIntervalRepo) ListOpenTimersOlderThan(_ context.Context, cutoff time.Time) ([]models.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Interval
	for _, iv := range f.intervals {
		if iv.OwnerKind == models.OwnerEmployee && iv.Status == models.IntervalActive &&
			iv.End == nil && iv.Start.Before(cutoff) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeIntervalRepo) Complete(_ context.Context, id string, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[id]
	if !ok || iv.Status != models.IntervalActive {
		return fmt.Errorf("interval %s not found or not active", id)
	}
	iv.End = &end
	iv.Status = models.IntervalCompleted
	f.intervals[id] = iv
	return nil
}

func (f *fakeIntervalRepo) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[id]
	if !ok {
		return fmt.Errorf("interval %s not found", id)
	}
	iv.Status = models.IntervalCancelled
	f.intervals[id] = iv
	return nil
}

func (f *fakeIntervalRepo) Reschedule(_ context.Context, id string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.intervals[id]
	if !ok {
		return fmt.Errorf("interval %s not found", id)
	}
	iv.Start = start
	iv.End = &end
	f.intervals[id] = iv
	return nil
}

func (f *fakeIntervalRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.intervals[id]; !ok {
		return fmt.Errorf("interval %s not found", id)
	}
	delete(f.intervals, id)
	return nil
}

func (f *fakeIntervalRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.intervals)
}

// helpers

func ts(h, min int) time.Time {
	return time.Date(2026, 3, 10, h, min, 0, 0, time.UTC)
}

func bounded(id string, kind models.OwnerKind, ownerID string, start, end time.Time) models.Interval {
	return models.Interval{
		ID:        id,
		OwnerKind: kind,
		OwnerID:   ownerID,
		Start:     start,
		End:       &end,
		Status:    models.IntervalActive,
	}
}

func open(id string, ownerID string, start time.Time) models.Interval {
	return models.Interval{
		ID:        id,
		OwnerKind: models.OwnerEmployee,
		OwnerID:   ownerID,
		Start:     start,
		Status:    models.IntervalActive,
	}
}

func newTestEngine(repo *fakeIntervalRepo) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Repo:   repo,
		Locker: NewMemoryLocker(),
		Clock:  FixedClock{T: ts(12, 0)},
		Slots:  DefaultSlotConfig(),
	}
}
