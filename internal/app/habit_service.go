package app

import (
	"context"
	"fmt"

	"habit_reminder_bot/internal/domain/habit"
	"habit_reminder_bot/internal/domain/user"
)

// Custom application-level errors for the habit service
var ErrInvalidTime = fmt.Errorf("reminder time is out of range")
var ErrUnknownCategory = fmt.Errorf("unknown habit category")

// ReminderScheduler is the scheduling facade the habit service arms and
// cancels triggers through. Implemented by the infra scheduler; kept as an
// interface here so the service can be tested without a real trigger engine.
type ReminderScheduler interface {
	ScheduleOrReplace(ctx context.Context, userID int64, category habit.Category, hour, minute int) error
	Cancel(userID int64, category habit.Category)
}

// HabitService implements the command-side use cases: registering users,
// setting and removing reminders, and adjusting streak counters in response
// to the done/missed buttons.
type HabitService struct {
	userRepo     user.Repository
	reminderRepo habit.ReminderRepository
	customRepo   habit.CustomReminderRepository
	scheduler    ReminderScheduler
}

func NewHabitService(
	ur user.Repository,
	rr habit.ReminderRepository,
	cr habit.CustomReminderRepository,
	scheduler ReminderScheduler,
) *HabitService {
	return &HabitService{
		userRepo:     ur,
		reminderRepo: rr,
		customRepo:   cr,
		scheduler:    scheduler,
	}
}

// RegisterUser records a new user on /start; repeated calls are harmless.
func (s *HabitService) RegisterUser(ctx context.Context, userID int64, displayName string) error {
	if err := s.userRepo.CreateIfAbsent(ctx, userID, displayName); err != nil {
		return fmt.Errorf("register user %d: %w", userID, err)
	}
	return nil
}

// SetDisplayName stores the name the user asked to be called by.
func (s *HabitService) SetDisplayName(ctx context.Context, userID int64, displayName string) error {
	if err := s.userRepo.UpdateDisplayName(ctx, userID, displayName); err != nil {
		return fmt.Errorf("set display name for user %d: %w", userID, err)
	}
	return nil
}

// SetReminder persists the fire time for (userID, category) and re-arms the
// trigger, replacing any previous one for the same key. The write happens
// first, so after a successful call the stored time and the armed time agree.
func (s *HabitService) SetReminder(ctx context.Context, userID int64, category habit.Category, hour, minute int) error {
	if !category.IsKnown() {
		return ErrUnknownCategory
	}
	if !habit.ValidTime(hour, minute) {
		return ErrInvalidTime
	}

	if err := s.reminderRepo.Upsert(ctx, userID, category, hour, minute); err != nil {
		return fmt.Errorf("persist reminder for user %d, category %s: %w", userID, category, err)
	}
	if err := s.scheduler.ScheduleOrReplace(ctx, userID, category, hour, minute); err != nil {
		return fmt.Errorf("arm reminder for user %d, category %s: %w", userID, category, err)
	}
	return nil
}

// RemoveReminder deletes the persisted reminder and cancels its trigger.
func (s *HabitService) RemoveReminder(ctx context.Context, userID int64, category habit.Category) error {
	if err := s.reminderRepo.Delete(ctx, userID, category); err != nil {
		return fmt.Errorf("delete reminder for user %d, category %s: %w", userID, category, err)
	}
	s.scheduler.Cancel(userID, category)
	return nil
}

// GetReminder returns the persisted reminder for (userID, category), or
// the repository's not-found error.
func (s *HabitService) GetReminder(ctx context.Context, userID int64, category habit.Category) (*habit.Reminder, error) {
	return s.reminderRepo.Get(ctx, userID, category)
}

// ListReminders returns all reminders of one user, with streaks.
func (s *HabitService) ListReminders(ctx context.Context, userID int64) ([]*habit.Reminder, error) {
	reminders, err := s.reminderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders for user %d: %w", userID, err)
	}
	return reminders, nil
}

// ConfirmCompletion increments the streak for (userID, category) and returns
// the new value.
func (s *HabitService) ConfirmCompletion(ctx context.Context, userID int64, category habit.Category) (int, error) {
	if err := s.reminderRepo.IncrementStreak(ctx, userID, category); err != nil {
		return 0, fmt.Errorf("increment streak for user %d, category %s: %w", userID, category, err)
	}
	streak, err := s.reminderRepo.GetStreak(ctx, userID, category)
	if err != nil {
		return 0, fmt.Errorf("get streak for user %d, category %s: %w", userID, category, err)
	}
	return streak, nil
}

// RecordMiss resets the streak for (userID, category) and returns the value
// it had before the reset.
func (s *HabitService) RecordMiss(ctx context.Context, userID int64, category habit.Category) (int, error) {
	previous, err := s.reminderRepo.GetStreak(ctx, userID, category)
	if err != nil {
		return 0, fmt.Errorf("get streak for user %d, category %s: %w", userID, category, err)
	}
	if err := s.reminderRepo.ResetStreak(ctx, userID, category); err != nil {
		return 0, fmt.Errorf("reset streak for user %d, category %s: %w", userID, category, err)
	}
	return previous, nil
}

// SetCustomReminderText stores the free-text label rendered into the custom
// category's reminder message.
func (s *HabitService) SetCustomReminderText(ctx context.Context, userID int64, text string) error {
	if err := s.customRepo.SetText(ctx, userID, text); err != nil {
		return fmt.Errorf("set custom reminder text for user %d: %w", userID, err)
	}
	return nil
}
