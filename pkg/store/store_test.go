package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoas/yoas/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u, msg, err := s.CreateUser(ctx, User{
		UserID:         42,
		BanReason:      strPtr("spam"),
		AdditionalInfo: strPtr("reported twice"),
	}, "buy cheap crypto now")
	require.NoError(t, err)

	assert.Equal(t, int64(42), u.UserID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, int64(42), msg.UserID)
	assert.Positive(t, msg.ID)

	got, msgs, err := s.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	require.NotNil(t, got.BanReason)
	assert.Equal(t, "spam", *got.BanReason)
	require.Len(t, msgs, 1)
	assert.Equal(t, "buy cheap crypto now", msgs[0].Text)
}

func TestCreateUserAlreadyExists(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 1}, "first")
	require.NoError(t, err)

	_, _, err = s.CreateUser(ctx, User{UserID: 1}, "second")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAlreadyExists))

	// The failed create must not have left a second message behind.
	_, msgs, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.GetUser(t.Context(), 404)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestDeleteUserCascadesMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 7}, "free money")
	require.NoError(t, err)

	deleted, msgs, err := s.DeleteUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted.UserID)
	require.Len(t, msgs, 1)

	_, _, err = s.GetUser(ctx, 7)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	// Cascade removed the message too.
	found, err := s.HasMessage(ctx, "free money")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteUserConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 13}, "spam")
	require.NoError(t, err)

	// Racing deletes of the same user: exactly one may report it found.
	const deleters = 4
	results := make(chan error, deleters)
	for range deleters {
		go func() {
			_, _, err := s.DeleteUser(ctx, 13)
			results <- err
		}()
	}

	var found, missing int
	for range deleters {
		switch err := <-results; {
		case err == nil:
			found++
		case errors.HasCode(err, errors.ErrCodeNotFound):
			missing++
		default:
			t.Errorf("unexpected delete error: %v", err)
		}
	}
	assert.Equal(t, 1, found)
	assert.Equal(t, deleters-1, missing)
}

func TestDeleteUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.DeleteUser(t.Context(), 404)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestHasMessage(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 9}, "click this link")
	require.NoError(t, err)

	found, err := s.HasMessage(ctx, "click this link")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.HasMessage(ctx, "innocent text")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUsersForDump(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 2, BanReason: strPtr("b")}, "two")
	require.NoError(t, err)
	_, _, err = s.CreateUser(ctx, User{UserID: 1, BanReason: strPtr("a")}, "one")
	require.NoError(t, err)

	users, err := s.UsersForDump(ctx, []string{"user_id"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, "one", users[0].LastMessage)
	assert.Equal(t, int64(2), users[1].UserID)
}

func TestUsersForDumpRejectsUnknownColumn(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UsersForDump(t.Context(), []string{"user_id; DROP TABLE users"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestMessagesForDumpDeduplicatesText(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_, _, err := s.CreateUser(ctx, User{UserID: 1}, "same spam")
	require.NoError(t, err)
	_, _, err = s.CreateUser(ctx, User{UserID: 2}, "same spam")
	require.NoError(t, err)
	_, _, err = s.CreateUser(ctx, User{UserID: 3}, "other spam")
	require.NoError(t, err)

	msgs, err := s.MessagesForDump(ctx, []string{"id"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	texts := []string{msgs[0].Text, msgs[1].Text}
	assert.Contains(t, texts, "same spam")
	assert.Contains(t, texts, "other spam")
}
