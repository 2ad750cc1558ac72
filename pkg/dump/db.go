package dump

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/yoas/yoas/pkg/errors"
)

// columnTypes maps exported columns to their SQLite column types.
var columnTypes = map[string]string{
	"user_id":                  "INTEGER",
	"ban_reason":               "TEXT",
	"additional_info":          "TEXT",
	"last_message":             "TEXT",
	"timestamp_utc_created_at": "REAL",
	"string_utc_created_at":    "TEXT",
	"message_id":               "INTEGER",
	"text":                     "TEXT",
}

// writeDB writes rows into a fresh SQLite file at outPath, in a single
// "entries" table with a synthetic autoincrement primary key. The message
// "id" column is renamed "message_id" so it cannot collide with that key.
func writeDB(rows []row, cols []string, outPath string) error {
	outCols := make([]string, len(cols))
	for i, col := range cols {
		if col == "id" {
			outCols[i] = "message_id"
		} else {
			outCols[i] = col
		}
	}

	db, err := sql.Open("sqlite", "file:"+outPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create dump database %q", outPath), err)
	}
	defer db.Close()

	defs := make([]string, 0, len(outCols)+1)
	defs = append(defs, "id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT")
	for _, col := range outCols {
		defs = append(defs, fmt.Sprintf("%s %s", col, columnTypes[col]))
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE entries (%s)", strings.Join(defs, ", "))); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create entries table", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(outCols)), ", ")
	insert := fmt.Sprintf("INSERT INTO entries (%s) VALUES (%s)",
		strings.Join(outCols, ", "), placeholders)

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to begin dump transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to prepare insert", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, r := range rows {
		for i, col := range cols {
			args[i] = r.values[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to insert dump row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to commit dump", err)
	}

	return nil
}
