package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/yoas/yoas/pkg/errors"
)

// messageOrderColumns are the columns messages may be ordered by in dumps.
var messageOrderColumns = map[string]bool{
	"id":      true,
	"user_id": true,
	"text":    true,
}

// HasMessage reports whether any banned user has sent a message with exactly
// this text. Callers normalize the text first.
func (s *Store) HasMessage(ctx context.Context, text string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM messages WHERE text = ? LIMIT 1`, text).Scan(&one)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		messageLookups.WithLabelValues("miss").Inc()
		return false, nil
	case err != nil:
		return false, errors.Wrap(errors.ErrCodeInternal, "failed to query message", err)
	}

	messageLookups.WithLabelValues("hit").Inc()
	return true, nil
}

// MessagesForDump returns messages de-duplicated on text, ordered by the
// given columns (default id). For duplicated texts the lowest message ID wins.
func (s *Store) MessagesForDump(ctx context.Context, orderBy []string) ([]Message, error) {
	order, err := orderClause(orderBy, messageOrderColumns, "id")
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(
		`SELECT MIN(id) AS id, user_id, text FROM messages GROUP BY text ORDER BY %s`, order)

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to query messages", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Text); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to scan message row", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to iterate message rows", err)
	}

	return msgs, nil
}
