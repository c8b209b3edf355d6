package core

import (
	"time"
)

// TimeProvider abstracts the clock so purchase dates are deterministic in tests
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
