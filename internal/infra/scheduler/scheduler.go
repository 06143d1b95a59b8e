package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"habit_reminder_bot/internal/app"
	"habit_reminder_bot/internal/domain/habit"

	"github.com/sirupsen/logrus"
)

const dispatchTimeout = 1 * time.Minute

// ReminderScheduler is the public entry point for arming daily reminders.
// It owns the (userID, category) -> trigger id mapping and guarantees that
// at most one trigger is armed per key: every schedule call cancels the
// previous trigger for the same key before arming the new one.
type ReminderScheduler struct {
	engine     *TriggerEngine
	dispatcher app.ReminderDispatcher
	reminders  habit.ReminderRepository
	logger     *logrus.Entry

	// Concurrent reschedules of the same key must serialize so the
	// cancel-then-arm sequence is never interleaved. Different keys
	// proceed in parallel.
	keysMu sync.Mutex
	keys   map[string]*sync.Mutex
}

func NewReminderScheduler(
	engine *TriggerEngine,
	dispatcher app.ReminderDispatcher,
	reminders habit.ReminderRepository,
	logger *logrus.Entry,
) *ReminderScheduler {
	return &ReminderScheduler{
		engine:     engine,
		dispatcher: dispatcher,
		reminders:  reminders,
		logger:     logger,
		keys:       make(map[string]*sync.Mutex),
	}
}

func (s *ReminderScheduler) keyLock(triggerID string) *sync.Mutex {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()
	mu, ok := s.keys[triggerID]
	if !ok {
		mu = &sync.Mutex{}
		s.keys[triggerID] = mu
	}
	return mu
}

// ScheduleOrReplace arms the daily trigger for (userID, category) at
// hour:minute, replacing any trigger previously armed for the same key.
// Calling it twice with identical arguments leaves exactly one trigger,
// armed at the latest-specified time. On an arming failure the previous
// trigger stays cancelled and the error is returned to the caller.
func (s *ReminderScheduler) ScheduleOrReplace(ctx context.Context, userID int64, category habit.Category, hour, minute int) error {
	triggerID := habit.Key(userID, category)

	mu := s.keyLock(triggerID)
	mu.Lock()
	defer mu.Unlock()

	if s.engine.Exists(triggerID) {
		s.engine.Cancel(triggerID)
	}

	callback := func() error {
		jobCtx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		return s.dispatcher.Dispatch(jobCtx, userID, category)
	}

	if err := s.engine.Arm(triggerID, hour, minute, callback); err != nil {
		return fmt.Errorf("schedule reminder for user %d, category %s: %w", userID, category, err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"category":  category,
		"fire_time": fmt.Sprintf("%02d:%02d", hour, minute),
	}).Info("Daily reminder scheduled.")
	return nil
}

// Cancel removes the trigger for (userID, category). Cancelling a key that
// has no armed trigger is a no-op, not an error.
func (s *ReminderScheduler) Cancel(userID int64, category habit.Category) {
	triggerID := habit.Key(userID, category)

	mu := s.keyLock(triggerID)
	mu.Lock()
	defer mu.Unlock()

	s.engine.Cancel(triggerID)
}

// Bootstrap re-arms every persisted reminder. The trigger engine holds no
// state across restarts, so this runs once at process start. A record that
// fails to arm is logged and skipped; it must not prevent the remaining
// reminders from being armed.
func (s *ReminderScheduler) Bootstrap(ctx context.Context) error {
	reminders, err := s.reminders.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: list reminders: %w", err)
	}

	armed := 0
	for _, rem := range reminders {
		if err := s.ScheduleOrReplace(ctx, rem.UserID, rem.Category, rem.Hour, rem.Minute); err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id":  rem.UserID,
				"category": rem.Category,
			}).WithError(err).Error("Failed to re-arm persisted reminder; continuing with the rest.")
			continue
		}
		armed++
	}

	s.logger.WithFields(logrus.Fields{
		"persisted": len(reminders),
		"armed":     armed,
	}).Info("Reminder bootstrap complete.")
	return nil
}

// NextFireTime reports when the reminder for (userID, category) fires next.
func (s *ReminderScheduler) NextFireTime(userID int64, category habit.Category) (time.Time, bool) {
	return s.engine.NextRun(habit.Key(userID, category))
}
