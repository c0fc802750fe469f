package utils

import (
	"sync"
	"time"
)

// Debounce returns a function that schedules fn to run once, d after the most
// recent call. Earlier pending runs are dropped.
func Debounce(d time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}

// Throttle returns a function that invokes fn at most once per d, reporting
// whether this call ran it.
func Throttle(d time.Duration, fn func()) func() bool {
	var mu sync.Mutex
	var last time.Time
	return func() bool {
		mu.Lock()
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < d {
			mu.Unlock()
			return false
		}
		last = now
		mu.Unlock()
		fn()
		return true
	}
}
