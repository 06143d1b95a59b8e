package user

import "context"

// Repository defines the operations for persisting and retrieving bot users.
type Repository interface {
	// CreateIfAbsent registers a new user; it is a no-op when the Telegram ID
	// is already known (the user pressed /start again).
	CreateIfAbsent(ctx context.Context, telegramID int64, displayName string) error
	// GetDisplayName returns the stored display name, or ErrUserNotFound.
	GetDisplayName(ctx context.Context, telegramID int64) (string, error)
	UpdateDisplayName(ctx context.Context, telegramID int64, displayName string) error
}
