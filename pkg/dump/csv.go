package dump

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/yoas/yoas/pkg/errors"
)

// writeCSV writes rows to outPath with a header of the included columns.
// Null values render as empty cells.
func writeCSV(rows []row, cols []string, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create dump %q", outPath), err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(cols); err != nil {
		_ = f.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to write CSV header", err)
	}

	record := make([]string, len(cols))
	for _, r := range rows {
		for i, col := range cols {
			record[i] = cell(r.values[col])
		}
		if err := w.Write(record); err != nil {
			_ = f.Close()
			return errors.Wrap(errors.ErrCodeInternal, "failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to flush CSV", err)
	}

	return f.Close()
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
