package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/juanibiapina/venue/internal/storage"
	"github.com/rs/xid"
)

// Code purposes.
const (
	PurposeLogin   = "login"
	PurposeBooking = "booking"
)

const codeTTL = 10 * time.Minute

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidCode  = errors.New("code does not match")
	ErrCodeExpired  = errors.New("code expired")
	ErrNoCode       = errors.New("no code was requested")
)

// CodeStore persists pending one-time codes.
type CodeStore interface {
	ReplaceCode(ctx context.Context, c *storage.PendingCode) error
	TakeCode(ctx context.Context, email, purpose string) (*storage.PendingCode, error)
}

// Mailer delivers a code to the user.
type Mailer interface {
	SendCode(ctx context.Context, email, purpose, code string) error
}

// LogMailer writes codes to the application log instead of sending email.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendCode(ctx context.Context, email, purpose, code string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("one-time code issued", "email", email, "purpose", purpose, "code", code)
	return nil
}

// Codes issues and checks one-time codes of a fixed length.
type Codes struct {
	store  CodeStore
	mailer Mailer
	length int
	now    func() time.Time
}

// NewCodes returns a code issuer producing codes of length digits.
func NewCodes(store CodeStore, mailer Mailer, length int) *Codes {
	return &Codes{store: store, mailer: mailer, length: length, now: time.Now}
}

// NormalizeEmail validates and lowercases an address.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return strings.ToLower(addr.Address), nil
}

// Request generates a new code for email, replacing any earlier one, and
// hands it to the mailer. The code is also returned for local delivery.
func (c *Codes) Request(ctx context.Context, email, purpose string) (string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	code, err := randomDigits(c.length)
	if err != nil {
		return "", err
	}
	pending := &storage.PendingCode{
		ID:        xid.New().String(),
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: c.now().Add(codeTTL),
	}
	if err := c.store.ReplaceCode(ctx, pending); err != nil {
		return "", err
	}
	if c.mailer != nil {
		if err := c.mailer.SendCode(ctx, email, purpose, code); err != nil {
			return "", fmt.Errorf("failed to deliver code: %w", err)
		}
	}
	return code, nil
}

// Verify consumes the pending code for email and compares it with code.
// A code can only be tried once; a wrong guess requires a new request.
func (c *Codes) Verify(ctx context.Context, email, purpose, code string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	pending, err := c.store.TakeCode(ctx, email, purpose)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNoCode
	}
	if err != nil {
		return err
	}
	if c.now().After(pending.ExpiresAt) {
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	return nil
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
