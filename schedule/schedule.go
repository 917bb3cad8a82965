// Package schedule tracks recurring playbook runs. Cron expressions are
// standard 5-field, evaluated in UTC only; the desktop shell polls Due
// and launches runs for each entry it returns.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var standardCronParser = cron.NewParser(
	cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow,
)

// ErrScheduleNotFound is returned for operations on unknown schedule IDs.
var ErrScheduleNotFound = errors.New("schedule not found")

// NextRun returns the next UTC activation of a cron expression after now.
func NextRun(expr string, now time.Time) (time.Time, error) {
	schedule, err := Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(now.UTC()), nil
}

// Parse validates a UTC-only 5-field cron expression.
func Parse(expr string) (cron.Schedule, error) {
	clean := strings.TrimSpace(expr)
	if clean == "" {
		return nil, fmt.Errorf("cron expression is required")
	}

	upper := strings.ToUpper(clean)
	if strings.Contains(upper, "CRON_TZ=") || strings.Contains(upper, "TZ=") {
		return nil, fmt.Errorf("cron expression must be UTC-only (timezone prefixes are not allowed)")
	}

	schedule, err := standardCronParser.Parse(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}

// Entry is one recurring run of a saved playbook.
type Entry struct {
	ID         string    `json:"id"`
	PlaybookID string    `json:"playbook_id"`
	CronExpr   string    `json:"cron_expr"`
	Enabled    bool      `json:"enabled"`
	NextRunAt  time.Time `json:"next_run_at"`
	LastRunAt  time.Time `json:"last_run_at"`
}

// Scheduler keeps schedule entries and answers which are due. It does
// not launch runs itself; the shell owns the runtime connection.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{entries: make(map[string]Entry)}
}

// Add registers an entry, computing its first activation from now.
// The entry's cron expression must be valid.
func (s *Scheduler) Add(entry Entry, now time.Time) error {
	next, err := NextRun(entry.CronExpr, now)
	if err != nil {
		return err
	}
	entry.NextRunAt = next

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Remove deletes an entry.
func (s *Scheduler) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Entries returns all entries ordered by next activation.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextRunAt.Before(out[j].NextRunAt)
	})
	return out
}

// Due returns the enabled entries whose next activation is at or before
// now, ordered by activation time.
func (s *Scheduler) Due(now time.Time) []Entry {
	var due []Entry
	for _, e := range s.Entries() {
		if e.Enabled && !e.NextRunAt.After(now.UTC()) {
			due = append(due, e)
		}
	}
	return due
}

// MarkRan records a run and advances the entry to its next activation.
func (s *Scheduler) MarkRan(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}

	next, err := NextRun(entry.CronExpr, now)
	if err != nil {
		return err
	}
	entry.LastRunAt = now.UTC()
	entry.NextRunAt = next
	s.entries[id] = entry
	return nil
}
