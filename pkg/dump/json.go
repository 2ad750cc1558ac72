package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yoas/yoas/pkg/errors"
)

// writeJSON writes rows to outPath as a JSON array. indent is the number of
// spaces of indentation; zero keeps everything on one line.
func writeJSON(rows []row, outPath string, indent int) error {
	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create dump %q", outPath), err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	// Encode an empty array rather than null for zero rows.
	if rows == nil {
		rows = []row{}
	}

	if err := enc.Encode(rows); err != nil {
		_ = f.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode JSON dump", err)
	}

	return f.Close()
}
