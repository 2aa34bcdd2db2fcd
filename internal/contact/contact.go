// Package contact stores contact-form submissions and relays them by mail.
package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/store"
)

var (
	ErrInvalid  = errors.New("invalid contact form")
	ErrNotFound = errors.New("message not found")
	ErrDelivery = errors.New("message stored but not delivered")
)

// Form is the contact form as posted by the page.
type Form struct {
	Name    string `form:"name" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=320"`
	Message string `form:"message" binding:"required,max=5000"`
}

// Message is a stored submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

// Mailer relays a stored message to the site owner.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type Service struct {
	db     *store.DB
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the store and an optional mailer. A nil mailer keeps
// messages in the database only.
func NewService(db *store.DB, mailer Mailer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, mailer: mailer, logger: logger, now: time.Now}
}

func (f Form) normalize() (Form, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
	if f.Name == "" || f.Message == "" {
		return f, fmt.Errorf("%w: name and message are required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return f, fmt.Errorf("%w: email: %v", ErrInvalid, err)
	}
	return f, nil
}

// Submit stores the form and relays it. The returned message is valid even
// when the error wraps ErrDelivery.
func (s *Service) Submit(ctx context.Context, f Form) (Message, error) {
	f, err := f.normalize()
	if err != nil {
		return Message{}, err
	}

	m := Message{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Email:     f.Email,
		Body:      f.Message,
		CreatedAt: s.now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, body, created_at, delivered) VALUES (?, ?, ?, ?, ?, 0)`,
		m.ID, m.Name, m.Email, m.Body, m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("storing message: %w", err)
	}

	if s.mailer == nil {
		s.logger.Info("contact message stored, mail relay disabled", zap.String("id", m.ID))
		return m, nil
	}
	if err := s.mailer.Send(ctx, m); err != nil {
		s.logger.Error("relaying contact message", zap.String("id", m.ID), zap.Error(err))
		return m, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE messages SET delivered = 1 WHERE id = ?`, m.ID); err != nil {
		return m, fmt.Errorf("marking message delivered: %w", err)
	}
	m.Delivered = true
	s.logger.Info("contact message delivered", zap.String("id", m.ID))
	return m, nil
}

// List returns the newest messages first.
func (s *Service) List(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at, delivered
		FROM messages
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt, &m.Delivered); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Message, error) {
	var m Message
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, body, created_at, delivered
		FROM messages WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt, &m.Delivered)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("loading message %s: %w", id, err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Counts returns the number of stored and of undelivered messages.
func (s *Service) Counts(ctx context.Context) (total, pending int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN delivered = 0 THEN 1 ELSE 0 END), 0) FROM messages`).
		Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("counting messages: %w", err)
	}
	return total, pending, nil
}
