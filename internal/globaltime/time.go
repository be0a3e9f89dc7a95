// Package globaltime provides the process clock. Cache expiry reads time
// through here so tests can advance it deterministically.
package globaltime

import (
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	nowFunc = time.Now
)

func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc()
}

func UTC() time.Time {
	return Now().UTC()
}

// SetMockTime pins the clock to a fixed instant. Test helper.
func SetMockTime(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = func() time.Time { return t }
}

// AdvanceMockTime pins the clock to the current reading plus d.
func AdvanceMockTime(d time.Duration) {
	frozen := Now().Add(d)
	SetMockTime(frozen)
}

func ResetTime() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = time.Now
}
