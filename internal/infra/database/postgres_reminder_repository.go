package database

import (
	"context"
	"database/sql"
	"fmt"

	"habit_reminder_bot/internal/domain/habit"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrReminderNotFound = fmt.Errorf("reminder not found")
var ErrCustomTextNotFound = fmt.Errorf("custom reminder text not found")

type PostgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminderRepository(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

func (r *PostgresReminderRepository) Upsert(ctx context.Context, userID int64, category habit.Category, hour, minute int) error {
	query := `INSERT INTO activities (user_id, category, fire_hour, fire_minute)
               VALUES ((SELECT id FROM users WHERE telegram_id = $1), $2, $3, $4)
               ON CONFLICT (user_id, category)
               DO UPDATE SET fire_hour = EXCLUDED.fire_hour, fire_minute = EXCLUDED.fire_minute, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, category, hour, minute); err != nil {
		return fmt.Errorf("error upserting reminder: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) Get(ctx context.Context, userID int64, category habit.Category) (*habit.Reminder, error) {
	query := `SELECT u.telegram_id, a.category, a.fire_hour, a.fire_minute, a.streak
               FROM activities a JOIN users u ON a.user_id = u.id
               WHERE u.telegram_id = $1 AND a.category = $2`

	rem := &habit.Reminder{}
	err := r.db.QueryRowContext(ctx, query, userID, category).Scan(&rem.UserID, &rem.Category, &rem.Hour, &rem.Minute, &rem.Streak)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("error getting reminder: %w", err)
	}
	return rem, nil
}

func (r *PostgresReminderRepository) Delete(ctx context.Context, userID int64, category habit.Category) error {
	query := `DELETE FROM activities
               WHERE user_id = (SELECT id FROM users WHERE telegram_id = $1) AND category = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, category); err != nil {
		return fmt.Errorf("error deleting reminder: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) ListAll(ctx context.Context) ([]*habit.Reminder, error) {
	query := `SELECT u.telegram_id, a.category, a.fire_hour, a.fire_minute, a.streak
               FROM activities a JOIN users u ON a.user_id = u.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

func (r *PostgresReminderRepository) ListByUser(ctx context.Context, userID int64) ([]*habit.Reminder, error) {
	query := `SELECT u.telegram_id, a.category, a.fire_hour, a.fire_minute, a.streak
               FROM activities a JOIN users u ON a.user_id = u.id
               WHERE u.telegram_id = $1
               ORDER BY a.category`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reminders for user: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

func scanReminders(rows *sql.Rows) ([]*habit.Reminder, error) {
	reminders := make([]*habit.Reminder, 0)
	for rows.Next() {
		rem := &habit.Reminder{}
		if err := rows.Scan(&rem.UserID, &rem.Category, &rem.Hour, &rem.Minute, &rem.Streak); err != nil {
			return nil, fmt.Errorf("error scanning reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

func (r *PostgresReminderRepository) IncrementStreak(ctx context.Context, userID int64, category habit.Category) error {
	query := `UPDATE activities SET streak = streak + 1, updated_at = NOW()
               WHERE user_id = (SELECT id FROM users WHERE telegram_id = $1) AND category = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, category); err != nil {
		return fmt.Errorf("error incrementing streak: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) ResetStreak(ctx context.Context, userID int64, category habit.Category) error {
	query := `UPDATE activities SET streak = 0, updated_at = NOW()
               WHERE user_id = (SELECT id FROM users WHERE telegram_id = $1) AND category = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, category); err != nil {
		return fmt.Errorf("error resetting streak: %w", err)
	}
	return nil
}

func (r *PostgresReminderRepository) GetStreak(ctx context.Context, userID int64, category habit.Category) (int, error) {
	query := `SELECT a.streak FROM activities a JOIN users u ON a.user_id = u.id
               WHERE u.telegram_id = $1 AND a.category = $2`

	var streak int
	err := r.db.QueryRowContext(ctx, query, userID, category).Scan(&streak)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrReminderNotFound
		}
		return 0, fmt.Errorf("error getting streak: %w", err)
	}
	return streak, nil
}

// PostgresCustomReminderRepository stores the single free-text label a user
// attaches to the custom category.
type PostgresCustomReminderRepository struct {
	db *sql.DB
}

func NewPostgresCustomReminderRepository(db *sql.DB) *PostgresCustomReminderRepository {
	return &PostgresCustomReminderRepository{db: db}
}

func (r *PostgresCustomReminderRepository) SetText(ctx context.Context, userID int64, text string) error {
	query := `INSERT INTO customs (user_id, custom_text)
               VALUES ((SELECT id FROM users WHERE telegram_id = $1), $2)
               ON CONFLICT (user_id) DO UPDATE SET custom_text = EXCLUDED.custom_text, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, text); err != nil {
		return fmt.Errorf("error setting custom reminder text: %w", err)
	}
	return nil
}

func (r *PostgresCustomReminderRepository) GetText(ctx context.Context, userID int64) (string, error) {
	query := `SELECT custom_text FROM customs
               WHERE user_id = (SELECT id FROM users WHERE telegram_id = $1)`

	var text string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&text)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrCustomTextNotFound
		}
		return "", fmt.Errorf("error getting custom reminder text: %w", err)
	}
	return text, nil
}
