package dump

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoas/yoas/pkg/errors"
	"github.com/yoas/yoas/pkg/store"
)

func seededDumper(t *testing.T) *Dumper {
	t.Helper()

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	reason := "spam"
	_, _, err = s.CreateUser(t.Context(), store.User{UserID: 1, BanReason: &reason}, "first spam")
	require.NoError(t, err)
	_, _, err = s.CreateUser(t.Context(), store.User{UserID: 2}, "second spam")
	require.NoError(t, err)

	return New(s)
}

func TestFileName(t *testing.T) {
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	name := FileName(TableUsers, FormatCSV, ts)
	assert.Equal(t, "users-dump-15.01.2025-10.30.00.csv", name)

	name = FileName(TableMessages, FormatJSON, ts)
	assert.Equal(t, "messages-dump-15.01.2025-10.30.00.json", name)
}

func TestDumpUsersCSV(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "users.csv")

	err := d.Dump(t.Context(), Options{
		Table:   TableUsers,
		Format:  FormatCSV,
		OrderBy: []string{"user_id"},
	}, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"user_id,ban_reason,additional_info,last_message,timestamp_utc_created_at,string_utc_created_at",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,spam,,first spam,"))
	// Nil ban_reason renders as an empty cell.
	assert.True(t, strings.HasPrefix(lines[2], "2,,,second spam,"))
}

func TestDumpUsersCSVIncludeSubset(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "users.csv")

	err := d.Dump(t.Context(), Options{
		Table:   TableUsers,
		Format:  FormatCSV,
		Include: []string{"user_id", "last_message"},
		OrderBy: []string{"user_id"},
	}, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "user_id,last_message", lines[0])
	assert.Equal(t, "1,first spam", lines[1])
}

func TestDumpMessagesJSON(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "messages.json")

	err := d.Dump(t.Context(), Options{
		Table:  TableMessages,
		Format: FormatJSON,
	}, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "first spam", rows[0]["text"])

	// No indent requested: single line plus the encoder's trailing newline.
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(string(b)), "\n")+1)
}

func TestDumpJSONIndented(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "messages.json")

	err := d.Dump(t.Context(), Options{
		Table:  TableMessages,
		Format: FormatJSON,
		Indent: 2,
	}, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  {")
}

func TestDumpJSONKeyOrderFollowsInclude(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "users.json")

	err := d.Dump(t.Context(), Options{
		Table:   TableUsers,
		Format:  FormatJSON,
		Include: []string{"last_message", "user_id"},
		OrderBy: []string{"user_id"},
	}, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	// The selected include order is preserved in the emitted objects.
	assert.Less(t,
		strings.Index(string(b), "last_message"),
		strings.Index(string(b), "user_id"))
}

func TestDumpDBFormat(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "messages.db")

	err := d.Dump(t.Context(), Options{
		Table:  TableMessages,
		Format: FormatDB,
	}, out)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", "file:"+out)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count))
	assert.Equal(t, 2, count)

	// The message id column is renamed to avoid the synthetic primary key.
	var text string
	require.NoError(t, db.QueryRow(
		`SELECT text FROM entries WHERE message_id = 1`).Scan(&text))
	assert.Equal(t, "first spam", text)
}

func TestDumpOriginalDBCopies(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "yoas.db")

	s, err := store.Open(src)
	require.NoError(t, err)
	_, _, err = s.CreateUser(t.Context(), store.User{UserID: 5}, "copied spam")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(src)
	require.NoError(t, err)
	defer s.Close()

	out := filepath.Join(dir, "copy.db")
	err = New(s).Dump(t.Context(), Options{
		Table:      TableUsers,
		Format:     FormatDB,
		OriginalDB: true,
	}, out)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", "file:"+out)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDumpValidation(t *testing.T) {
	d := seededDumper(t)
	out := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown table", opts: Options{Table: "accounts", Format: FormatCSV}},
		{name: "unknown format", opts: Options{Table: TableUsers, Format: "xml"}},
		{name: "duplicate include", opts: Options{
			Table: TableUsers, Format: FormatCSV, Include: []string{"user_id", "user_id"}}},
		{name: "unknown include", opts: Options{
			Table: TableUsers, Format: FormatCSV, Include: []string{"password"}}},
		{name: "duplicate order_by", opts: Options{
			Table: TableUsers, Format: FormatCSV, OrderBy: []string{"user_id", "user_id"}}},
		{name: "unknown order_by", opts: Options{
			Table: TableMessages, Format: FormatCSV, OrderBy: []string{"created"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Dump(t.Context(), tt.opts, out)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestCleanArtifacts(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "users-dump-01.01.2025-00.00.00.csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	live := filepath.Join(dir, "yoas.db")
	require.NoError(t, os.WriteFile(live, []byte("db"), 0o644))

	require.NoError(t, CleanArtifacts(dir))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "expected stale dump removed")
	_, err = os.Stat(live)
	assert.NoError(t, err, "expected live database untouched")
}
