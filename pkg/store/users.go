package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/yoas/yoas/pkg/errors"
)

// userOrderColumns are the columns users may be ordered by in dumps.
var userOrderColumns = map[string]bool{
	"user_id":         true,
	"ban_reason":      true,
	"additional_info": true,
	"utc_created_at":  true,
}

// CreateUser records a banned user together with the message that got them
// banned. The message text is stored as given; callers normalize first.
// Returns ALREADY_EXISTS when the user ID is present.
func (s *Store) CreateUser(ctx context.Context, u User, messageText string) (User, Message, error) {
	var msg Message

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, u.UserID).Scan(&one)
	switch {
	case err == nil:
		return u, msg, errors.New(errors.ErrCodeAlreadyExists, "this user ID is already in database")
	case !stderrors.Is(err, sql.ErrNoRows):
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to check for existing user", err)
	}

	u.CreatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (user_id, ban_reason, additional_info, utc_created_at) VALUES (?, ?, ?, ?)`,
		u.UserID, u.BanReason, u.AdditionalInfo, timeToEpoch(u.CreatedAt))
	if err != nil {
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to insert user", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO messages (user_id, text) VALUES (?, ?)`, u.UserID, messageText)
	if err != nil {
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to insert message", err)
	}

	msgID, err := res.LastInsertId()
	if err != nil {
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to resolve message ID", err)
	}

	if err := tx.Commit(); err != nil {
		return u, msg, errors.Wrap(errors.ErrCodeInternal, "failed to commit user creation", err)
	}

	bansRecorded.Inc()

	msg = Message{ID: msgID, UserID: u.UserID, Text: messageText}
	return u, msg, nil
}

// GetUser returns the user and their messages, or NOT_FOUND.
func (s *Store) GetUser(ctx context.Context, userID int64) (User, []Message, error) {
	var u User
	var epoch float64

	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, ban_reason, additional_info, utc_created_at FROM users WHERE user_id = ?`,
		userID).Scan(&u.UserID, &u.BanReason, &u.AdditionalInfo, &epoch)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		return u, nil, errors.New(errors.ErrCodeNotFound, "user not found")
	case err != nil:
		return u, nil, errors.Wrap(errors.ErrCodeInternal, "failed to query user", err)
	}
	u.CreatedAt = epochToTime(epoch)

	msgs, err := userMessages(ctx, s.db, userID)
	if err != nil {
		return u, nil, err
	}

	return u, msgs, nil
}

// DeleteUser removes the user and, via cascade, their messages, reading and
// deleting within one transaction so concurrent deletes cannot both observe
// the user. The deleted records are returned so callers can echo them back.
// Returns NOT_FOUND when the user does not exist.
func (s *Store) DeleteUser(ctx context.Context, userID int64) (User, []Message, error) {
	var u User

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return u, nil, errors.Wrap(errors.ErrCodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var epoch float64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, ban_reason, additional_info, utc_created_at FROM users WHERE user_id = ?`,
		userID).Scan(&u.UserID, &u.BanReason, &u.AdditionalInfo, &epoch)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		return u, nil, errors.New(errors.ErrCodeNotFound, "user not found")
	case err != nil:
		return u, nil, errors.Wrap(errors.ErrCodeInternal, "failed to query user", err)
	}
	u.CreatedAt = epochToTime(epoch)

	msgs, err := userMessages(ctx, tx, userID)
	if err != nil {
		return u, nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID); err != nil {
		return u, nil, errors.Wrap(errors.ErrCodeInternal, "failed to delete user", err)
	}

	if err := tx.Commit(); err != nil {
		return u, nil, errors.Wrap(errors.ErrCodeInternal, "failed to commit user deletion", err)
	}

	bansRemoved.Inc()

	return u, msgs, nil
}

// UsersForDump returns all users ordered by the given columns (default
// utc_created_at), each with their most recent message text populated.
func (s *Store) UsersForDump(ctx context.Context, orderBy []string) ([]User, error) {
	order, err := orderClause(orderBy, userOrderColumns, "utc_created_at")
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT u.user_id, u.ban_reason, u.additional_info, u.utc_created_at,
		COALESCE((SELECT m.text FROM messages m WHERE m.user_id = u.user_id ORDER BY m.id DESC LIMIT 1), '')
		FROM users u ORDER BY %s`, order)

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to query users", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var epoch float64
		if err := rows.Scan(&u.UserID, &u.BanReason, &u.AdditionalInfo, &epoch, &u.LastMessage); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to scan user row", err)
		}
		u.CreatedAt = epochToTime(epoch)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to iterate user rows", err)
	}

	return users, nil
}

// querier is the subset of sql.DB and sql.Tx the read helpers need.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func userMessages(ctx context.Context, q querier, userID int64) ([]Message, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, text FROM messages WHERE user_id = ? ORDER BY id`, userID)
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

// orderClause validates the requested columns against allowed and joins them
// into an ORDER BY clause, falling back to def when none are given.
func orderClause(orderBy []string, allowed map[string]bool, def string) (string, error) {
	if len(orderBy) == 0 {
		return def, nil
	}
	for _, col := range orderBy {
		if !allowed[col] {
			return "", errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid order column %q", col))
		}
	}
	return strings.Join(orderBy, ", "), nil
}

// timeToEpoch converts t to UTC epoch seconds with sub-second precision.
func timeToEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// epochToTime is the inverse of timeToEpoch.
func epochToTime(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
