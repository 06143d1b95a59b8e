package user

import "time"

// User represents a bot user in the system.
type User struct {
	ID          int64
	TelegramID  int64
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
