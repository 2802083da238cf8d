package scheduling

import (
	"time"

	"autoshop/models"
)

// SlotConfig carries the shop's operating window and slot cadence. These
// are configuration inputs, never compiled-in constants, so the generator
// is testable with arbitrary calendars.
type SlotConfig struct {
	BusinessStartHour  int            // whole hour, e.g. 9
	BusinessEndHour    int            // whole hour, e.g. 17
	GranularityMinutes int            // slot cadence, e.g. 30
	Location           *time.Location // timezone for business-hour arithmetic
}

// DefaultSlotConfig mirrors the shop's standard 09:00-17:00 window at a
// 30-minute cadence, in UTC.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		BusinessStartHour:  9,
		BusinessEndHour:    17,
		GranularityMinutes: 30,
		Location:           time.UTC,
	}
}

func (c SlotConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c SlotConfig) validate() error {
	if c.BusinessStartHour < 0 || c.BusinessEndHour > 24 || c.BusinessStartHour >= c.BusinessEndHour {
		return ErrBadSlotWindow
	}
	if c.GranularityMinutes <= 0 {
		return ErrBadSlotWindow
	}
	return nil
}

// GenerateSlots enumerates candidate appointment start times for the given
// calendar day and filters out every candidate that overlaps a blocking
// existing booking. Candidates step from the business start at the
// configured granularity; a candidate t is emitted iff t+duration fits
// inside the business window and [t, t+duration) conflicts with nothing.
//
// The result is an ordered, possibly empty slice (a fully booked day is a
// valid outcome). The function is read-only and stateless: identical
// inputs always yield identical output.
func GenerateSlots(date time.Time, serviceDuration time.Duration, cfg SlotConfig, existing []models.Interval) ([]time.Time, error) {
	if serviceDuration <= 0 {
		return nil, ErrBadDuration
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// The requested calendar day is read from the date's UTC components and
	// the business window is built on that day in the shop's timezone.
	// Converting the midnight-UTC instant into a western timezone would
	// land on the previous local day.
	loc := cfg.location()
	y, m, d := date.UTC().Date()
	businessStart := time.Date(y, m, d, cfg.BusinessStartHour, 0, 0, 0, loc)
	businessEnd := time.Date(y, m, d, cfg.BusinessEndHour, 0, 0, 0, loc)
	step := time.Duration(cfg.GranularityMinutes) * time.Minute

	slots := []time.Time{}
	for t := businessStart; !t.Add(serviceDuration).After(businessEnd); t = t.Add(step) {
		if overlapsAny(t, t.Add(serviceDuration), existing) {
			continue
		}
		slots = append(slots, t)
	}
	return slots, nil
}

func overlapsAny(start, end time.Time, existing []models.Interval) bool {
	candidate := models.Interval{Start: start, End: &end}
	for _, iv := range existing {
		if !iv.Blocking() {
			continue
		}
		if Overlaps(candidate, iv) {
			return true
		}
	}
	return false
}
