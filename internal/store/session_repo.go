package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var sessionColumns = []string{
	"sequence", "timestamp", "session_id", "user_id", "company", "job_title",
	"overall_pct", "overall_grade", "answered", "total", "data",
}

func (r *sessionRepo) SaveSession(ctx context.Context, s *SavedSession) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := s.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	data := s.Data
	if len(data) == 0 {
		data = []byte("{}")
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessions).
		Columns(sessionColumns...).
		Values(seqNum, ts.UTC(), s.SessionID, nullString(s.UserID), s.Company, s.JobTitle,
			s.Percentage, s.Grade, s.Answered, s.Total, string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.Sequence = seqNum
	s.Timestamp = ts.UTC()
	return nil
}

func (r *sessionRepo) ListSessions(ctx context.Context, opts QueryOpts) ([]SavedSession, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.UserID != "" {
		preds = append(preds, entsql.EQ("user_id", opts.UserID))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SavedSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) GetSession(ctx context.Context, sessionID string) (*SavedSession, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *sessionRepo) DeleteSessions(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var deleted int64
	for _, table := range []string{tableSessions, tableAnswerEvents, tableSessionEvents} {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("delete %s: %w", table, err)
		}
		if table == tableSessions {
			deleted, _ = res.RowsAffected()
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return int(deleted), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SavedSession, error) {
	var (
		s    SavedSession
		user sql.NullString
		data string
	)
	err := row.Scan(&s.Sequence, &s.Timestamp, &s.SessionID, &user, &s.Company, &s.JobTitle,
		&s.Percentage, &s.Grade, &s.Answered, &s.Total, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.UserID = user.String
	s.Data = []byte(data)
	return &s, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
