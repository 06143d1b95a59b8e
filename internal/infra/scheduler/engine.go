package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrTriggerExists is returned by Arm when the trigger id is already armed.
// De-duplication of real-world keys is the facade's job, so a duplicate id
// reaching the engine is a programming error on the caller's side.
var ErrTriggerExists = fmt.Errorf("trigger already exists")

// TriggerEngine maintains a table of named daily triggers. Each armed trigger
// fires its callback once per day at HH:MM in the engine's location until
// cancelled. The recurrence itself is driven by a cron engine: a single
// background loop that sleeps until the nearest due entry and wakes early
// when an entry is added or removed, so nothing here busy-polls.
type TriggerEngine struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID
	logger  *logrus.Entry
}

func NewTriggerEngine(loc *time.Location, logger *logrus.Entry) *TriggerEngine {
	return &TriggerEngine{
		cron:    cron.New(cron.WithLocation(loc)),
		entries: make(map[string]cron.EntryID),
		logger:  logger,
	}
}

// Start launches the background scheduling loop. Triggers may be armed both
// before and after Start.
func (e *TriggerEngine) Start() {
	e.cron.Start()
	e.logger.Info("Trigger engine started.")
}

// Stop halts the scheduling loop and waits for any in-flight callbacks.
func (e *TriggerEngine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
	e.logger.Info("Trigger engine stopped.")
}

// Arm registers a daily trigger firing at hour:minute. A callback error is
// logged and the daily cycle continues: one failed fire never disarms the
// following days. Arming an id that already exists fails with ErrTriggerExists.
func (e *TriggerEngine) Arm(triggerID string, hour, minute int, callback func() error) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("arm trigger %s: hour %d out of range 0..23", triggerID, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("arm trigger %s: minute %d out of range 0..59", triggerID, minute)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.entries[triggerID]; ok {
		return fmt.Errorf("arm trigger %s: %w", triggerID, ErrTriggerExists)
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	entryID, err := e.cron.AddFunc(spec, func() {
		if err := callback(); err != nil {
			e.logger.WithField("trigger_id", triggerID).WithError(err).
				Error("Trigger callback failed; daily schedule kept.")
		}
	})
	if err != nil {
		return fmt.Errorf("arm trigger %s: %w", triggerID, err)
	}

	e.entries[triggerID] = entryID
	e.logger.WithFields(logrus.Fields{
		"trigger_id": triggerID,
		"fire_time":  fmt.Sprintf("%02d:%02d", hour, minute),
	}).Debug("Trigger armed.")
	return nil
}

// Cancel removes the trigger if present; cancelling an unknown id is a no-op.
// Removal takes effect immediately: a cancelled entry never fires again, even
// when the cancel lands while its callback is running.
func (e *TriggerEngine) Cancel(triggerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entryID, ok := e.entries[triggerID]
	if !ok {
		return
	}
	e.cron.Remove(entryID)
	delete(e.entries, triggerID)
	e.logger.WithField("trigger_id", triggerID).Debug("Trigger cancelled.")
}

// Exists reports whether a trigger with the given id is currently armed.
func (e *TriggerEngine) Exists(triggerID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.entries[triggerID]
	return ok
}

// NextRun returns the next fire time of an armed trigger. The second result
// is false when the id is unknown, or when the engine has not been started
// yet (the cron loop assigns next-run times on start).
func (e *TriggerEngine) NextRun(triggerID string) (time.Time, bool) {
	e.mu.Lock()
	entryID, ok := e.entries[triggerID]
	e.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	next := e.cron.Entry(entryID).Next
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

// ArmedCount returns the number of currently armed triggers.
func (e *TriggerEngine) ArmedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}
