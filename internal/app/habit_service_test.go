package app

import (
	"context"
	"errors"
	"testing"

	"habit_reminder_bot/internal/domain/habit"
	idb "habit_reminder_bot/internal/infra/database"
)

type reminderKey struct {
	userID   int64
	category habit.Category
}

type fakeHabitRepo struct {
	reminders map[reminderKey]*habit.Reminder
	upserts   int
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{reminders: map[reminderKey]*habit.Reminder{}}
}

func (r *fakeHabitRepo) Upsert(ctx context.Context, userID int64, category habit.Category, hour, minute int) error {
	key := reminderKey{userID, category}
	rem, ok := r.reminders[key]
	if !ok {
		rem = &habit.Reminder{UserID: userID, Category: category}
		r.reminders[key] = rem
	}
	rem.Hour, rem.Minute = hour, minute
	r.upserts++
	return nil
}
func (r *fakeHabitRepo) Get(ctx context.Context, userID int64, category habit.Category) (*habit.Reminder, error) {
	rem, ok := r.reminders[reminderKey{userID, category}]
	if !ok {
		return nil, idb.ErrReminderNotFound
	}
	return rem, nil
}
func (r *fakeHabitRepo) Delete(ctx context.Context, userID int64, category habit.Category) error {
	delete(r.reminders, reminderKey{userID, category})
	return nil
}
func (r *fakeHabitRepo) ListAll(ctx context.Context) ([]*habit.Reminder, error) { return nil, nil }
func (r *fakeHabitRepo) ListByUser(ctx context.Context, userID int64) ([]*habit.Reminder, error) {
	var out []*habit.Reminder
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			out = append(out, rem)
		}
	}
	return out, nil
}
func (r *fakeHabitRepo) IncrementStreak(ctx context.Context, userID int64, category habit.Category) error {
	rem, ok := r.reminders[reminderKey{userID, category}]
	if !ok {
		return idb.ErrReminderNotFound
	}
	rem.Streak++
	return nil
}
func (r *fakeHabitRepo) ResetStreak(ctx context.Context, userID int64, category habit.Category) error {
	rem, ok := r.reminders[reminderKey{userID, category}]
	if !ok {
		return idb.ErrReminderNotFound
	}
	rem.Streak = 0
	return nil
}
func (r *fakeHabitRepo) GetStreak(ctx context.Context, userID int64, category habit.Category) (int, error) {
	rem, ok := r.reminders[reminderKey{userID, category}]
	if !ok {
		return 0, idb.ErrReminderNotFound
	}
	return rem.Streak, nil
}

type scheduledCall struct {
	userID       int64
	category     habit.Category
	hour, minute int
}

type fakeScheduler struct {
	scheduled []scheduledCall
	cancelled []reminderKey
	err       error
}

func (s *fakeScheduler) ScheduleOrReplace(ctx context.Context, userID int64, category habit.Category, hour, minute int) error {
	if s.err != nil {
		return s.err
	}
	s.scheduled = append(s.scheduled, scheduledCall{userID, category, hour, minute})
	return nil
}
func (s *fakeScheduler) Cancel(userID int64, category habit.Category) {
	s.cancelled = append(s.cancelled, reminderKey{userID, category})
}

func newTestHabitService(repo *fakeHabitRepo, sched *fakeScheduler) *HabitService {
	users := &fakeUserRepo{names: map[int64]string{}}
	customs := &fakeCustomRepo{texts: map[int64]string{}}
	return NewHabitService(users, repo, customs, sched)
}

func TestSetReminderPersistsAndArms(t *testing.T) {
	t.Parallel()
	repo := newFakeHabitRepo()
	sched := &fakeScheduler{}
	s := newTestHabitService(repo, sched)

	if err := s.SetReminder(context.Background(), 7, habit.CategoryWater, 8, 30); err != nil {
		t.Fatalf("SetReminder failed: %v", err)
	}

	if repo.upserts != 1 {
		t.Fatalf("repo upserts = %d, want 1", repo.upserts)
	}
	if len(sched.scheduled) != 1 {
		t.Fatalf("scheduler called %d times, want 1", len(sched.scheduled))
	}
	got := sched.scheduled[0]
	want := scheduledCall{7, habit.CategoryWater, 8, 30}
	if got != want {
		t.Fatalf("scheduled %+v, want %+v", got, want)
	}
}

func TestSetReminderRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	repo := newFakeHabitRepo()
	sched := &fakeScheduler{}
	s := newTestHabitService(repo, sched)
	ctx := context.Background()

	if err := s.SetReminder(ctx, 7, habit.CategoryWater, 25, 0); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("invalid hour error = %v, want ErrInvalidTime", err)
	}
	if err := s.SetReminder(ctx, 7, "juggling", 9, 0); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("unknown category error = %v, want ErrUnknownCategory", err)
	}
	if repo.upserts != 0 || len(sched.scheduled) != 0 {
		t.Fatal("rejected input still reached the repository or the scheduler")
	}
}

func TestSetReminderSchedulingFailureIsSurfaced(t *testing.T) {
	t.Parallel()
	repo := newFakeHabitRepo()
	sched := &fakeScheduler{err: errors.New("timer queue failure")}
	s := newTestHabitService(repo, sched)

	if err := s.SetReminder(context.Background(), 7, habit.CategoryWater, 8, 0); err == nil {
		t.Fatal("SetReminder succeeded despite scheduling failure")
	}
}

func TestRemoveReminderCancelsTrigger(t *testing.T) {
	t.Parallel()
	repo := newFakeHabitRepo()
	sched := &fakeScheduler{}
	s := newTestHabitService(repo, sched)
	ctx := context.Background()

	if err := s.SetReminder(ctx, 7, habit.CategorySleep, 23, 0); err != nil {
		t.Fatalf("SetReminder failed: %v", err)
	}
	if err := s.RemoveReminder(ctx, 7, habit.CategorySleep); err != nil {
		t.Fatalf("RemoveReminder failed: %v", err)
	}

	if _, err := repo.Get(ctx, 7, habit.CategorySleep); err != idb.ErrReminderNotFound {
		t.Fatalf("reminder still persisted after removal: %v", err)
	}
	if len(sched.cancelled) != 1 || sched.cancelled[0] != (reminderKey{7, habit.CategorySleep}) {
		t.Fatalf("cancelled = %+v, want [{7 sleep}]", sched.cancelled)
	}
}

func TestStreakLifecycle(t *testing.T) {
	t.Parallel()
	repo := newFakeHabitRepo()
	sched := &fakeScheduler{}
	s := newTestHabitService(repo, sched)
	ctx := context.Background()

	if err := s.SetReminder(ctx, 7, habit.CategoryRead, 21, 0); err != nil {
		t.Fatalf("SetReminder failed: %v", err)
	}

	for day := 1; day <= 3; day++ {
		streak, err := s.ConfirmCompletion(ctx, 7, habit.CategoryRead)
		if err != nil {
			t.Fatalf("ConfirmCompletion failed: %v", err)
		}
		if streak != day {
			t.Fatalf("streak = %d after %d confirmations", streak, day)
		}
	}

	previous, err := s.RecordMiss(ctx, 7, habit.CategoryRead)
	if err != nil {
		t.Fatalf("RecordMiss failed: %v", err)
	}
	if previous != 3 {
		t.Fatalf("previous streak = %d, want 3", previous)
	}
	if streak, _ := repo.GetStreak(ctx, 7, habit.CategoryRead); streak != 0 {
		t.Fatalf("streak after miss = %d, want 0", streak)
	}
}
