package scheduler

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

// fire runs a trigger's callback synchronously, as the cron loop would at
// fire time.
func fire(t *testing.T, e *TriggerEngine, triggerID string) {
	t.Helper()
	e.mu.Lock()
	entryID, ok := e.entries[triggerID]
	e.mu.Unlock()
	if !ok {
		t.Fatalf("trigger %s is not armed", triggerID)
	}
	e.cron.Entry(entryID).WrappedJob.Run()
}

func TestArmDuplicateID(t *testing.T) {
	t.Parallel()
	e := NewTriggerEngine(time.Local, testLogger())

	if err := e.Arm("job:1:water", 8, 0, func() error { return nil }); err != nil {
		t.Fatalf("first Arm failed: %v", err)
	}
	err := e.Arm("job:1:water", 9, 0, func() error { return nil })
	if !errors.Is(err, ErrTriggerExists) {
		t.Fatalf("second Arm error = %v, want ErrTriggerExists", err)
	}
}

func TestArmInvalidTime(t *testing.T) {
	t.Parallel()
	e := NewTriggerEngine(time.Local, testLogger())

	tests := []struct {
		name   string
		hour   int
		minute int
	}{
		{name: "hour too large", hour: 24, minute: 0},
		{name: "hour negative", hour: -1, minute: 0},
		{name: "minute too large", hour: 12, minute: 60},
		{name: "minute negative", hour: 12, minute: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Arm("job:1:water", tt.hour, tt.minute, func() error { return nil })
			if err == nil {
				t.Fatalf("Arm(%d, %d) succeeded, want error", tt.hour, tt.minute)
			}
			if e.Exists("job:1:water") {
				t.Fatal("invalid Arm left a trigger armed")
			}
		})
	}
}

func TestCancelRemovesTrigger(t *testing.T) {
	t.Parallel()
	e := NewTriggerEngine(time.Local, testLogger())

	if err := e.Arm("job:1:sleep", 23, 30, func() error { return nil }); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}
	e.Cancel("job:1:sleep")
	if e.Exists("job:1:sleep") {
		t.Fatal("trigger still exists after Cancel")
	}

	// The id is free for re-arming now.
	if err := e.Arm("job:1:sleep", 22, 0, func() error { return nil }); err != nil {
		t.Fatalf("re-Arm after Cancel failed: %v", err)
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	t.Parallel()
	e := NewTriggerEngine(time.Local, testLogger())
	e.Cancel("job:404:water")
	if e.ArmedCount() != 0 {
		t.Fatalf("ArmedCount = %d, want 0", e.ArmedCount())
	}
}

func TestNextRunDailyRecurrence(t *testing.T) {
	e := NewTriggerEngine(time.Local, testLogger())
	e.Start()
	defer e.Stop()

	now := time.Now()
	tests := []struct {
		name   string
		target time.Time
	}{
		{name: "time still ahead today", target: now.Add(2 * time.Hour)},
		{name: "time already passed today", target: now.Add(-2 * time.Hour)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := fmt.Sprintf("job:%d:read", i)
			if err := e.Arm(id, tt.target.Hour(), tt.target.Minute(), func() error { return nil }); err != nil {
				t.Fatalf("Arm failed: %v", err)
			}
			next, ok := e.NextRun(id)
			if !ok {
				t.Fatal("NextRun reported no scheduled time")
			}
			if !next.After(now) {
				t.Fatalf("next run %v is not in the future", next)
			}
			if next.Sub(now) > 24*time.Hour {
				t.Fatalf("next run %v is more than a day away", next)
			}
			if next.Hour() != tt.target.Hour() || next.Minute() != tt.target.Minute() {
				t.Fatalf("next run at %02d:%02d, want %02d:%02d",
					next.Hour(), next.Minute(), tt.target.Hour(), tt.target.Minute())
			}
		})
	}
}

func TestCallbackErrorKeepsTrigger(t *testing.T) {
	t.Parallel()
	e := NewTriggerEngine(time.Local, testLogger())

	calls := 0
	err := e.Arm("job:1:exercise", 7, 0, func() error {
		calls++
		return errors.New("delivery failed")
	})
	if err != nil {
		t.Fatalf("Arm failed: %v", err)
	}

	fire(t, e, "job:1:exercise")
	if !e.Exists("job:1:exercise") {
		t.Fatal("trigger disarmed after callback error")
	}

	// The next day's fire still happens.
	fire(t, e, "job:1:exercise")
	if calls != 2 {
		t.Fatalf("callback ran %d times, want 2", calls)
	}
}
