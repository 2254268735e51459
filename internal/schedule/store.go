// Package schedule implements the appointment book: a JSON-file backed
// store with timestamp normalization, occupancy checks, and booking.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/agendai/agendai/internal/logging"
)

// Layout is the canonical minute-precision timestamp form. All stored
// timestamps and all occupancy comparisons use this exact form. Times are
// treated as local wall clock; no timezone is stored.
const Layout = "2006-01-02 15:04"

var (
	// ErrInvalidFormat means a user-supplied date/time string could not be parsed.
	ErrInvalidFormat = errors.New("invalid date/time format")

	// ErrStoreRead means the agenda file exists but could not be read or decoded.
	ErrStoreRead = errors.New("agenda read failed")
)

// acceptedLayouts are the input forms Normalize understands. The canonical
// layout comes first so normalization is idempotent.
var acceptedLayouts = []string{
	Layout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15h04",
}

// Appointment is one booked entry in the agenda. JSON keys match the
// on-disk format the original agenda file uses.
type Appointment struct {
	ID          int    `json:"id"`
	Timestamp   string `json:"data_hora"`
	Description string `json:"descricao"`
}

// Store persists appointments as a single JSON array file. The whole
// collection is read at the start of every operation and rewritten in full
// after every booking. A mutex serializes read-modify-write cycles so
// concurrent turns within one process cannot lose bookings; cross-process
// access is not coordinated.
type Store struct {
	path string
	mu   sync.Mutex
	log  *logging.Logger
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string, log *logging.Logger) *Store {
	return &Store{path: path, log: log.Sub("schedule")}
}

// Normalize parses a free-form date/time string and returns the canonical
// minute-precision form. Returns ErrInvalidFormat when no accepted layout
// matches.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(Layout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
}

// Load reads the full persisted collection. A missing file is an empty
// agenda, not an error; any other failure wraps ErrStoreRead.
func (s *Store) Load() ([]Appointment, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Appointment{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	var appts []Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStoreRead, s.path, err)
	}
	return appts, nil
}

// IsOccupied reports whether some stored appointment has exactly the given
// canonical timestamp.
func (s *Store) IsOccupied(timestamp string) (bool, error) {
	appts, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, a := range appts {
		if a.Timestamp == timestamp {
			return true, nil
		}
	}
	return false, nil
}

// Book appends a new appointment at the given canonical timestamp and
// persists the collection. Ids are assigned as max(existing)+1, starting at
// 1 on an empty agenda. Book does not consult IsOccupied: conflict
// avoidance is the caller's responsibility, and a booking at an occupied
// timestamp is accepted.
func (s *Store) Book(timestamp, description string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts, err := s.Load()
	if err != nil {
		return Appointment{}, err
	}

	next := 1
	for _, a := range appts {
		if a.ID >= next {
			next = a.ID + 1
		}
	}

	appt := Appointment{ID: next, Timestamp: timestamp, Description: description}
	appts = append(appts, appt)
	s.save(appts)

	s.log.Info().
		Int("id", appt.ID).
		Str("timestamp", appt.Timestamp).
		Msg("appointment booked")

	return appt, nil
}

// save rewrites the full collection. Write failures are logged and
// swallowed; callers do not observe persistence errors.
func (s *Store) save(appts []Appointment) {
	data, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		s.log.Warn().Err(err).Msg("encoding agenda failed, booking not persisted")
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("creating agenda directory failed, booking not persisted")
			return
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("writing agenda failed, booking not persisted")
	}
}
