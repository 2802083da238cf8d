package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/models"
)

func TestGenerateSlotsEmptyDay(t *testing.T) {
	// 09:00-17:00, 30-minute cadence, 1-hour service: the last admissible
	// start is 16:00 (16:30 would run past close), giving 15 slots.
	slots, err := GenerateSlots(ts(0, 0), time.Hour, DefaultSlotConfig(), nil)
	require.NoError(t, err)
	require.Len(t, slots, 15)
	assert.True(t, slots[0].Equal(ts(9, 0)))
	assert.True(t, slots[len(slots)-1].Equal(ts(16, 0)))
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestGenerateSlotsAroundExistingBooking(t *testing.T) {
	// Existing 2h booking 10:00-12:00; 1h oil change. Everything touching
	// [10:00, 12:00) must go; 09:00 and 12:00 survive.
	existing := []models.Interval{
		bounded("b1", models.OwnerShop, "", ts(10, 0), ts(12, 0)),
	}

	slots, err := GenerateSlots(ts(0, 0), models.ServiceDuration("oil-change"), DefaultSlotConfig(), existing)
	require.NoError(t, err)

	excluded := []time.Time{ts(9, 30), ts(10, 0), ts(10, 30), ts(11, 0), ts(11, 30)}
	for _, ex := range excluded {
		for _, s := range slots {
			assert.Falsef(t, s.Equal(ex), "slot %v should have been excluded", ex)
		}
	}

	containsTime := func(list []time.Time, want time.Time) bool {
		for _, s := range list {
			if s.Equal(want) {
				return true
			}
		}
		return false
	}
	assert.True(t, containsTime(slots, ts(9, 0)))
	assert.True(t, containsTime(slots, ts(12, 0)))
	assert.Len(t, slots, 10)
}

func TestGenerateSlotsNeverOverlapBookings(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var existing []models.Interval
		for i := 0; i < 1+rng.Intn(5); i++ {
			start := ts(9, 0).Add(time.Duration(rng.Intn(7*60)) * time.Minute)
			end := start.Add(time.Duration(30+rng.Intn(180)) * time.Minute)
			existing = append(existing, bounded("b", models.OwnerShop, "", start, end))
		}

		dur := time.Duration(30+rng.Intn(150)) * time.Minute
		slots, err := GenerateSlots(ts(0, 0), dur, DefaultSlotConfig(), existing)
		require.NoError(t, err)

		for _, s := range slots {
			cand := bounded("c", models.OwnerShop, "", s, s.Add(dur))
			for _, b := range existing {
				require.Falsef(t, Overlaps(cand, b),
					"slot %v (+%v) overlaps booking [%v, %v)", s, dur, b.Start, *b.End)
			}
		}
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	existing := []models.Interval{
		bounded("b1", models.OwnerShop, "", ts(10, 0), ts(12, 0)),
		bounded("b2", models.OwnerShop, "", ts(14, 0), ts(15, 0)),
	}

	first, err := GenerateSlots(ts(0, 0), time.Hour, DefaultSlotConfig(), existing)
	require.NoError(t, err)
	second, err := GenerateSlots(ts(0, 0), time.Hour, DefaultSlotConfig(), existing)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsIgnoresCancelled(t *testing.T) {
	cancelled := bounded("b1", models.OwnerShop, "", ts(10, 0), ts(12, 0))
	cancelled.Status = models.IntervalCancelled

	slots, err := GenerateSlots(ts(0, 0), time.Hour, DefaultSlotConfig(), []models.Interval{cancelled})
	require.NoError(t, err)
	assert.Len(t, slots, 15)
}

func TestGenerateSlotsFullyBookedDay(t *testing.T) {
	existing := []models.Interval{
		bounded("b1", models.OwnerShop, "", ts(9, 0), ts(17, 0)),
	}
	slots, err := GenerateSlots(ts(0, 0), time.Hour, DefaultSlotConfig(), existing)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsUnknownServiceTypeUsesDefault(t *testing.T) {
	// Unknown types map to the 2-hour default: last start is 15:00.
	slots, err := GenerateSlots(ts(0, 0), models.ServiceDuration("flux-capacitor-swap"), DefaultSlotConfig(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.True(t, slots[len(slots)-1].Equal(ts(15, 0)))
}

func TestGenerateSlotsWesternTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cfg := DefaultSlotConfig()
	cfg.Location = ny

	// The request date arrives as midnight UTC. The business window must
	// land on that calendar day in the shop's timezone, not slide back to
	// the previous local day.
	slots, err := GenerateSlots(ts(0, 0), time.Hour, cfg, nil)
	require.NoError(t, err)
	require.Len(t, slots, 15)
	assert.True(t, slots[0].Equal(time.Date(2026, 3, 10, 9, 0, 0, 0, ny)))
	assert.Equal(t, 10, slots[0].In(ny).Day())
}

func TestGenerateSlotsRejectsBadInput(t *testing.T) {
	_, err := GenerateSlots(ts(0, 0), 0, DefaultSlotConfig(), nil)
	assert.ErrorIs(t, err, ErrBadDuration)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := DefaultSlotConfig()
	bad.BusinessStartHour = 18
	_, err = GenerateSlots(ts(0, 0), time.Hour, bad, nil)
	assert.ErrorIs(t, err, ErrBadSlotWindow)

	bad = DefaultSlotConfig()
	bad.GranularityMinutes = 0
	_, err = GenerateSlots(ts(0, 0), time.Hour, bad, nil)
	assert.ErrorIs(t, err, ErrBadSlotWindow)
}
