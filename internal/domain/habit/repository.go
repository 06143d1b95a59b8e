package habit

import "context"

// ReminderRepository defines the persistence operations for daily reminders
// and their streak counters.
type ReminderRepository interface {
	// Upsert creates a reminder for (userID, category) or replaces its fire time.
	Upsert(ctx context.Context, userID int64, category Category, hour, minute int) error
	// Get returns the reminder for (userID, category), or ErrReminderNotFound.
	Get(ctx context.Context, userID int64, category Category) (*Reminder, error)
	Delete(ctx context.Context, userID int64, category Category) error
	// ListAll returns every persisted reminder; used to re-arm triggers at startup.
	ListAll(ctx context.Context) ([]*Reminder, error)
	ListByUser(ctx context.Context, userID int64) ([]*Reminder, error)

	// Streak counter, per (userID, category). Mutated when the user answers
	// the done/missed buttons of a dispatched reminder.
	IncrementStreak(ctx context.Context, userID int64, category Category) error
	ResetStreak(ctx context.Context, userID int64, category Category) error
	GetStreak(ctx context.Context, userID int64, category Category) (int, error)
}

// CustomReminderRepository stores the free-text label of a user's custom reminder.
type CustomReminderRepository interface {
	SetText(ctx context.Context, userID int64, text string) error
	// GetText returns the label, or ErrCustomTextNotFound.
	GetText(ctx context.Context, userID int64) (string, error)
}
