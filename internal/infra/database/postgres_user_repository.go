package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user not found")

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateIfAbsent(ctx context.Context, telegramID int64, displayName string) error {
	query := `INSERT INTO users (telegram_id, display_name)
               VALUES ($1, $2)
               ON CONFLICT (telegram_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, telegramID, displayName); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetDisplayName(ctx context.Context, telegramID int64) (string, error) {
	query := `SELECT display_name FROM users WHERE telegram_id = $1`

	var name string
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("error getting display name: %w", err)
	}
	return name, nil
}

func (r *PostgresUserRepository) UpdateDisplayName(ctx context.Context, telegramID int64, displayName string) error {
	query := `UPDATE users SET display_name = $1, updated_at = NOW() WHERE telegram_id = $2`

	res, err := r.db.ExecContext(ctx, query, displayName, telegramID)
	if err != nil {
		return fmt.Errorf("error updating display name: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking display name update: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
