package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lectern/internal/auth"
)

const sessionsTable = "sessions"

// SessionRepo persists the single signed-in session. It implements
// auth.SessionStore.
type SessionRepo struct {
	drv *entsql.Driver
}

var _ auth.SessionStore = (*SessionRepo)(nil)

// Load returns the stored session, or nil if nobody is signed in.
func (r *SessionRepo) Load(ctx context.Context) (*auth.Session, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("user_id", "email", "token", "saved_at").
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("id", 1)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		return nil, nil
	}
	var (
		s       auth.Session
		savedAt int64
	)
	if err := rows.Scan(&s.UserID, &s.Email, &s.Token, &savedAt); err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.SavedAt = time.Unix(0, savedAt).UTC()
	return &s, nil
}

// Save replaces the stored session.
func (r *SessionRepo) Save(ctx context.Context, s auth.Session) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns("id", "user_id", "email", "token", "saved_at").
		Values(1, s.UserID, s.Email, s.Token, s.SavedAt.UnixNano()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing when nobody is signed in is
// not an error.
func (r *SessionRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(sessionsTable).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
