package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "action", "question_index", "answered", "total").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.QuestionIndex, data.Answered, data.Total).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

var answerColumns = []string{
	"sequence", "timestamp", "session_id", "question_index", "question_text", "answer_text",
	"elapsed_secs", "word_count", "hits", "total_keys", "percentage", "grade", "forced",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAnswerEvents).
		Columns(answerColumns...).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.QuestionIndex, data.QuestionText,
			data.AnswerText, data.ElapsedSecs, data.WordCount, data.Hits, data.TotalKeys,
			data.Percentage, data.Grade, data.Forced).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(answerColumns...).
		From(entsql.Table(tableAnswerEvents)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventData
	for rows.Next() {
		var e AnswerEventData
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.QuestionIndex,
			&e.QuestionText, &e.AnswerText, &e.ElapsedSecs, &e.WordCount, &e.Hits,
			&e.TotalKeys, &e.Percentage, &e.Grade, &e.Forced); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
