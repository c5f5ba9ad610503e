package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles repetitive log lines to at most one per minute.
var OnceAMinute = &rate.Sometimes{Interval: time.Minute}
