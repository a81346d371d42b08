package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"roombooking/internal/entities"
	apperrors "roombooking/internal/errors"
	"roombooking/internal/repository"
	"roombooking/internal/schedule"
)

const operationHoursKey = "operation_hours"

// SettingsService resolves process-wide configuration with defaults. Opening
// hours keep a last-known-good copy in memory so a flaky settings read never
// collapses the grid to the default window mid-day.
type SettingsService struct {
	repo *repository.SettingsRepository

	mu        sync.RWMutex
	lastHours schedule.OpeningHours
	haveLast  bool
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// storedHours tolerates both field spellings found in older stored values.
type storedHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

func (s storedHours) toOpeningHours() schedule.OpeningHours {
	h := schedule.OpeningHours{Start: s.Start, End: s.End}
	if h.Start == "" {
		h.Start = s.Open
	}
	if h.End == "" {
		h.End = s.Close
	}
	return h
}

// OpeningHours returns the configured operating window, falling back to the
// last successfully read value and then to the default.
func (s *SettingsService) OpeningHours() schedule.OpeningHours {
	raw, err := s.repo.Get(operationHoursKey)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingNotFound) {
			log.Printf("settings: failed to read operation_hours: %v", err)
		}
		return s.fallbackHours()
	}
	var stored storedHours
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("settings: malformed operation_hours value: %v", err)
		return s.fallbackHours()
	}
	hours := stored.toOpeningHours()
	if hours.Start == "" || hours.End == "" {
		return s.fallbackHours()
	}

	s.mu.Lock()
	s.lastHours = hours
	s.haveLast = true
	s.mu.Unlock()
	return hours
}

func (s *SettingsService) fallbackHours() schedule.OpeningHours {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.haveLast {
		return s.lastHours
	}
	return schedule.DefaultOpeningHours
}

// SetOpeningHours validates and stores a new operating window.
func (s *SettingsService) SetOpeningHours(h schedule.OpeningHours) error {
	start, err := schedule.ParseTimeOfDay(h.Start)
	if err != nil {
		return apperrors.BadRequest(fmt.Sprintf("invalid opening time %q, expected HH:MM", h.Start))
	}
	end, err := schedule.ParseTimeOfDay(h.End)
	if err != nil {
		return apperrors.BadRequest(fmt.Sprintf("invalid closing time %q, expected HH:MM", h.End))
	}
	if !start.Aligned() || !end.Aligned() {
		return apperrors.BadRequest("opening hours must fall on 30-minute boundaries")
	}
	if err := s.repo.Upsert(operationHoursKey, h); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastHours = h
	s.haveLast = true
	s.mu.Unlock()
	return nil
}

// TestingClock returns the stored simulated-clock setting (disabled when the
// key was never written).
func (s *SettingsService) TestingClock() (entities.TestingClock, error) {
	raw, err := s.repo.Get(testingClockKey)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return entities.TestingClock{}, nil
		}
		return entities.TestingClock{}, err
	}
	var tc entities.TestingClock
	if err := json.Unmarshal(raw, &tc); err != nil {
		return entities.TestingClock{}, fmt.Errorf("malformed testing_clock value: %w", err)
	}
	return tc, nil
}

// SetTestingClock validates and stores the simulated clock. clock, when
// non-nil, is refreshed immediately so the change applies without waiting
// for the next scheduled refresh.
func (s *SettingsService) SetTestingClock(tc entities.TestingClock, clock *SettingsClock) error {
	if tc.Enabled {
		if _, err := resolveTestingClock(tc, time.Now()); err != nil {
			return apperrors.BadRequest("invalid testing clock, expected date YYYY-MM-DD and time HH:MM")
		}
	}
	if err := s.repo.Upsert(testingClockKey, tc); err != nil {
		return err
	}
	if clock != nil {
		clock.Refresh()
	}
	return nil
}
