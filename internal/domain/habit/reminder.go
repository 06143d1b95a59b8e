package habit

import "fmt"

// Reminder is one persisted (user, category, time-of-day) record.
// A user has at most one reminder per category; changing the time
// replaces the record under the same key.
type Reminder struct {
	UserID   int64
	Category Category
	Hour     int // 0..23, local wall-clock
	Minute   int // 0..59
	Streak   int // consecutive confirmed days
}

// Key returns the composite reminder key formatted as a stable string.
// The scheduler uses it as the trigger id, so the format must stay
// deterministic for a given (user, category) pair.
func Key(userID int64, category Category) string {
	return fmt.Sprintf("job:%d:%s", userID, category)
}

// ValidTime reports whether hour and minute form a valid HH:MM fire time.
func ValidTime(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}
