package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"roombooking/internal/entities"
	"roombooking/internal/repository"
)

// settingsReader is the slice of the settings repository the clock needs.
type settingsReader interface {
	Get(key string) (json.RawMessage, error)
}

const testingClockKey = "testing_clock"

// SettingsClock implements schedule.Clock against the testing_clock settings
// row. While the row is enabled every consumer of time sees the configured
// date+time pair; otherwise the wall clock. Refresh is driven by a cron
// entry (~10s) so a newly toggled simulated clock takes effect quickly.
type SettingsClock struct {
	repo settingsReader

	mu      sync.RWMutex
	current entities.TestingClock
}

func NewSettingsClock(repo settingsReader) *SettingsClock {
	return &SettingsClock{repo: repo}
}

// Refresh re-reads the testing_clock setting. A missing row disables the
// simulated clock; a transient store failure keeps the last known value.
func (c *SettingsClock) Refresh() {
	raw, err := c.repo.Get(testingClockKey)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			c.set(entities.TestingClock{})
			return
		}
		log.Printf("clock: failed to refresh testing_clock, keeping last value: %v", err)
		return
	}
	var tc entities.TestingClock
	if err := json.Unmarshal(raw, &tc); err != nil {
		log.Printf("clock: malformed testing_clock value, keeping last value: %v", err)
		return
	}
	c.set(tc)
}

func (c *SettingsClock) set(tc entities.TestingClock) {
	c.mu.Lock()
	c.current = tc
	c.mu.Unlock()
}

func (c *SettingsClock) Now() time.Time {
	c.mu.RLock()
	tc := c.current
	c.mu.RUnlock()

	if !tc.Enabled {
		return time.Now()
	}
	now, err := resolveTestingClock(tc, time.Now())
	if err != nil {
		log.Printf("clock: failed to parse testing clock %+v: %v", tc, err)
		return time.Now()
	}
	return now
}

// Simulated reports whether the process is currently on the simulated clock.
func (c *SettingsClock) Simulated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Enabled
}

// resolveTestingClock combines the configured date and time, defaulting each
// part to the wall clock's when absent.
func resolveTestingClock(tc entities.TestingClock, wall time.Time) (time.Time, error) {
	datePart := tc.Date
	if datePart == "" {
		datePart = wall.Format("2006-01-02")
	}
	timePart := tc.Time
	if timePart == "" {
		timePart = "00:00"
	}
	return time.ParseInLocation("2006-01-02 15:04", datePart+" "+timePart, wall.Location())
}
