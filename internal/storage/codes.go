package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PendingCode is a one-time code waiting to be entered.
type PendingCode struct {
	ID        string
	Email     string
	Purpose   string
	Code      string
	ExpiresAt time.Time
}

// ReplaceCode stores c, discarding any earlier code for the same email and purpose.
func (s *Store) ReplaceCode(ctx context.Context, c *PendingCode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM login_codes WHERE email = ? AND purpose = ?", c.Email, c.Purpose); err != nil {
		return fmt.Errorf("failed to clear old codes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO login_codes (id, email, purpose, code, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Email, c.Purpose, c.Code, c.ExpiresAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to insert code: %w", err)
	}
	return tx.Commit()
}

// TakeCode returns and deletes the pending code for email and purpose.
func (s *Store) TakeCode(ctx context.Context, email, purpose string) (*PendingCode, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		c            PendingCode
		expiresAtStr string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, email, purpose, code, expires_at FROM login_codes
		WHERE email = ? AND purpose = ?
	`, email, purpose).Scan(&c.ID, &c.Email, &c.Purpose, &c.Code, &expiresAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("code for %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if c.ExpiresAt, err = time.Parse(time.RFC3339, expiresAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse expires_at: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM login_codes WHERE id = ?", c.ID); err != nil {
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &c, nil
}
