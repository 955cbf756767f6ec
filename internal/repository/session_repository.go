package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/safestep/safestep-api/internal/models"
)

// SessionRepository persists the login audit trail.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a login event.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.LoginTime.IsZero() {
		session.LoginTime = time.Now().UTC()
	}
	const query = `INSERT INTO sessions (id, user_id, ip_address, user_agent, login_time)
        VALUES (:id, :user_id, :ip_address, :user_agent, :login_time)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Close stamps the logout timestamp on a session row.
func (r *SessionRepository) Close(ctx context.Context, id string, logoutTime time.Time) error {
	const query = `UPDATE sessions SET logout_time = $2 WHERE id = $1 AND logout_time IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, logoutTime); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// ListByUser returns all sessions for a user, most recent first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	const query = `SELECT id, user_id, ip_address, user_agent, login_time, logout_time FROM sessions WHERE user_id = $1 ORDER BY login_time DESC`
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
