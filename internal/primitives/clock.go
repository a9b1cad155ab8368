package primitives

import (
	"time"

	"nulltrace/internal/domain"
)

// SystemClock is the default domain.Clock, backed by the wall clock and
// the runtime's timer wheel.
var SystemClock domain.Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) domain.Timer {
	return (*timerAdapter)(time.AfterFunc(d, f))
}

// timerAdapter makes *time.Timer satisfy domain.Timer, whose Reset already
// matches time.Timer's signature and return value.
type timerAdapter time.Timer

func (t *timerAdapter) Stop() bool                 { return (*time.Timer)(t).Stop() }
func (t *timerAdapter) Reset(d time.Duration) bool { return (*time.Timer)(t).Reset(d) }
