package scheduling

import "time"

// Clock abstracts time.Now so admission checks are deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock always reports T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
