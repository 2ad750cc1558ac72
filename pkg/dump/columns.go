package dump

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yoas/yoas/pkg/errors"
	"github.com/yoas/yoas/pkg/store"
)

// stringTimeLayout matches the formatted creation timestamp in API responses.
const stringTimeLayout = "2006-01-02 15:04:05"

// userIncludeColumns is the canonical column order for users dumps.
var userIncludeColumns = []string{
	"user_id",
	"ban_reason",
	"additional_info",
	"last_message",
	"timestamp_utc_created_at",
	"string_utc_created_at",
}

// messageIncludeColumns is the canonical column order for messages dumps.
var messageIncludeColumns = []string{
	"id",
	"user_id",
	"text",
}

// row is one exported record with a stable column order.
type row struct {
	columns []string
	values  map[string]any
}

// MarshalJSON emits the row as an object with keys in column order, matching
// the order the caller selected via include.
func (r row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// resolveInclude validates the requested columns against allowed and returns
// the effective column list (all columns when none are requested).
func resolveInclude(include, allowed []string) ([]string, error) {
	if len(include) == 0 {
		cols := make([]string, len(allowed))
		copy(cols, allowed)
		return cols, nil
	}

	if err := rejectDuplicates("include", include); err != nil {
		return nil, err
	}

	valid := make(map[string]bool, len(allowed))
	for _, col := range allowed {
		valid[col] = true
	}
	for _, col := range include {
		if !valid[col] {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid include column %q", col))
		}
	}

	cols := make([]string, len(include))
	copy(cols, include)
	return cols, nil
}

// rejectDuplicates fails when values repeat; include and order_by follow the
// order of the list that is passed, so duplicates are always a caller bug.
func rejectDuplicates(name string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("%s parameter has duplicate values", name))
		}
		seen[v] = true
	}
	return nil
}

func userRows(users []store.User, cols []string) []row {
	rows := make([]row, 0, len(users))
	for _, u := range users {
		values := map[string]any{}
		for _, col := range cols {
			switch col {
			case "user_id":
				values[col] = u.UserID
			case "ban_reason":
				values[col] = nullable(u.BanReason)
			case "additional_info":
				values[col] = nullable(u.AdditionalInfo)
			case "last_message":
				values[col] = u.LastMessage
			case "timestamp_utc_created_at":
				values[col] = float64(u.CreatedAt.UnixNano()) / 1e9
			case "string_utc_created_at":
				values[col] = u.CreatedAt.UTC().Format(stringTimeLayout)
			}
		}
		rows = append(rows, row{columns: cols, values: values})
	}
	return rows
}

func messageRows(msgs []store.Message, cols []string) []row {
	rows := make([]row, 0, len(msgs))
	for _, m := range msgs {
		values := map[string]any{}
		for _, col := range cols {
			switch col {
			case "id":
				values[col] = m.ID
			case "user_id":
				values[col] = m.UserID
			case "text":
				values[col] = m.Text
			}
		}
		rows = append(rows, row{columns: cols, values: values})
	}
	return rows
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
