package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/models"
)

func TestBoundedOverlap(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint before", ts(9, 0), ts(10, 0), ts(11, 0), ts(12, 0), false},
		{"disjoint after", ts(13, 0), ts(14, 0), ts(11, 0), ts(12, 0), false},
		{"touching boundary is free", ts(9, 0), ts(11, 0), ts(11, 0), ts(13, 0), false},
		{"partial overlap", ts(9, 0), ts(11, 0), ts(10, 30), ts(12, 0), true},
		{"containment", ts(9, 0), ts(17, 0), ts(10, 0), ts(11, 0), true},
		{"identical", ts(10, 0), ts(12, 0), ts(10, 0), ts(12, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BoundedOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// the half-open rule is symmetric
			assert.Equal(t, tc.want, BoundedOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

// TestOverlapsRandomPairs checks Overlaps against the reference definition
// max(start) < min(end) for a large batch of random bounded pairs.
func TestOverlapsRandomPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := ts(0, 0)

	for i := 0; i < 2000; i++ {
		aStart := base.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
		aEnd := aStart.Add(time.Duration(1+rng.Intn(8*60)) * time.Minute)
		bStart := base.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
		bEnd := bStart.Add(time.Duration(1+rng.Intn(8*60)) * time.Minute)

		a := bounded("a", models.OwnerShop, "", aStart, aEnd)
		b := bounded("b", models.OwnerShop, "", bStart, bEnd)

		maxStart := aStart
		if bStart.After(maxStart) {
			maxStart = bStart
		}
		minEnd := aEnd
		if bEnd.Before(minEnd) {
			minEnd = bEnd
		}
		want := maxStart.Before(minEnd)

		require.Equalf(t, want, Overlaps(a, b),
			"a=[%v,%v) b=[%v,%v)", aStart, aEnd, bStart, bEnd)
	}
}

func TestOverlapsOpenIntervals(t *testing.T) {
	openTimer := open("t1", "emp-1", ts(8, 0))

	t.Run("open blocks later candidates", func(t *testing.T) {
		cand := bounded("c", models.OwnerEmployee, "emp-1", ts(14, 0), ts(15, 0))
		assert.True(t, Overlaps(openTimer, cand))
		assert.True(t, Overlaps(cand, openTimer))
	})

	t.Run("open does not block earlier candidates", func(t *testing.T) {
		cand := bounded("c", models.OwnerEmployee, "emp-1", ts(6, 0), ts(8, 0))
		assert.False(t, Overlaps(openTimer, cand))
	})

	t.Run("two open intervals always overlap", func(t *testing.T) {
		other := open("t2", "emp-1", ts(23, 0))
		assert.True(t, Overlaps(openTimer, other))
	})

	t.Run("only the candidate end decides", func(t *testing.T) {
		assert.True(t, OpenTimerOverlap(ts(8, 0), ts(8, 30)))
		assert.False(t, OpenTimerOverlap(ts(8, 0), ts(8, 0)))
		assert.False(t, OpenTimerOverlap(ts(8, 0), ts(7, 0)))
	})
}

func TestTimerOverlapRule(t *testing.T) {
	entry := bounded("e1", models.OwnerEmployee, "emp-1", ts(9, 0), ts(11, 0))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"candidate start inside entry", ts(10, 30), ts(12, 0), true},
		{"candidate end inside entry", ts(8, 0), ts(10, 0), true},
		{"candidate contains entry", ts(8, 0), ts(12, 0), true},
		{"identical window", ts(9, 0), ts(11, 0), true},
		{"touching end boundary accepted", ts(11, 0), ts(13, 0), false},
		{"touching start boundary accepted", ts(7, 0), ts(9, 0), false},
		{"fully before", ts(6, 0), ts(7, 0), false},
		{"fully after", ts(12, 0), ts(13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimerOverlapRule(tc.start, tc.end, entry))
		})
	}

	t.Run("open active entry blocks candidate ending after its start", func(t *testing.T) {
		running := open("e2", "emp-1", ts(14, 0))
		assert.True(t, TimerOverlapRule(ts(14, 30), ts(15, 0), running))
		assert.True(t, TimerOverlapRule(ts(13, 0), ts(15, 0), running))
		assert.False(t, TimerOverlapRule(ts(12, 0), ts(14, 0), running))
	})
}
