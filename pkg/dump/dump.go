package dump

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yoas/yoas/pkg/errors"
	"github.com/yoas/yoas/pkg/store"
)

// Table identifies which ban-database table to export.
type Table string

const (
	// TableUsers exports banned users.
	TableUsers Table = "users"
	// TableMessages exports spam messages.
	TableMessages Table = "messages"
)

func (t Table) IsUnknown() bool {
	switch t {
	case TableUsers, TableMessages:
		return false
	default:
		return true
	}
}

// Format represents the dump output format.
type Format string

const (
	// FormatDB produces a standalone SQLite file.
	FormatDB Format = "db"
	// FormatCSV produces a CSV file with a header row.
	FormatCSV Format = "csv"
	// FormatJSON produces a JSON array of row objects.
	FormatJSON Format = "json"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatDB, FormatCSV, FormatJSON:
		return false
	default:
		return true
	}
}

// fileNameTimeLayout renders the dump timestamp as dd.mm.yyyy-hh.mm.ss.
const fileNameTimeLayout = "02.01.2006-15.04.05"

// Options control a single dump operation.
type Options struct {
	Table  Table
	Format Format

	// Include selects and orders the exported columns. Empty means all
	// columns of the table in canonical order. Duplicates are rejected.
	Include []string

	// OrderBy selects the row ordering columns. Empty means the table's
	// default ordering. Duplicates are rejected.
	OrderBy []string

	// OriginalDB, for the db format only, produces a 1:1 byte copy of the
	// live database file; Include and OrderBy are ignored.
	OriginalDB bool

	// Indent, for the JSON format only, is the number of spaces of
	// indentation. Zero means a single line.
	Indent int
}

// Dumper exports the ban database to files.
type Dumper struct {
	store *store.Store
}

// New creates a Dumper backed by the given store.
func New(s *store.Store) *Dumper {
	return &Dumper{store: s}
}

// FileName derives the conventional dump file name for a dump taken at t.
func FileName(table Table, format Format, t time.Time) string {
	return fmt.Sprintf("%s-dump-%s.%s", table, t.Format(fileNameTimeLayout), format)
}

// Dump validates opts and writes the export to outPath.
func (d *Dumper) Dump(ctx context.Context, opts Options, outPath string) error {
	if opts.Table.IsUnknown() {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("table must be %q or %q", TableUsers, TableMessages))
	}
	if opts.Format.IsUnknown() {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("file format must be %q, %q, or %q", FormatDB, FormatCSV, FormatJSON))
	}
	if err := rejectDuplicates("order_by", opts.OrderBy); err != nil {
		return err
	}

	if opts.Format == FormatDB && opts.OriginalDB {
		return copyFile(d.store.Path(), outPath)
	}

	rows, cols, err := d.collect(ctx, opts)
	if err != nil {
		return err
	}

	slog.Debug("writing dump",
		"table", opts.Table,
		"format", opts.Format,
		"rows", len(rows),
		"path", outPath,
	)

	switch opts.Format {
	case FormatCSV:
		return writeCSV(rows, cols, outPath)
	case FormatJSON:
		return writeJSON(rows, outPath, opts.Indent)
	case FormatDB:
		return writeDB(rows, cols, outPath)
	default:
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported format %q", opts.Format))
	}
}

// collect queries the store and shapes the result into ordered rows.
func (d *Dumper) collect(ctx context.Context, opts Options) ([]row, []string, error) {
	switch opts.Table {
	case TableUsers:
		cols, err := resolveInclude(opts.Include, userIncludeColumns)
		if err != nil {
			return nil, nil, err
		}
		users, err := d.store.UsersForDump(ctx, opts.OrderBy)
		if err != nil {
			return nil, nil, err
		}
		return userRows(users, cols), cols, nil

	case TableMessages:
		cols, err := resolveInclude(opts.Include, messageIncludeColumns)
		if err != nil {
			return nil, nil, err
		}
		msgs, err := d.store.MessagesForDump(ctx, opts.OrderBy)
		if err != nil {
			return nil, nil, err
		}
		return messageRows(msgs, cols), cols, nil

	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported table %q", opts.Table))
	}
}

// CleanArtifacts removes previously produced dump files from dir. Only files
// following the FileName convention are touched, so live database files are
// never at risk.
func CleanArtifacts(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read dump directory %q", dir), err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.Contains(name, "-dump-") {
			continue
		}
		switch filepath.Ext(name) {
		case ".db", ".csv", ".json":
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return errors.Wrap(errors.ErrCodeInternal,
					fmt.Sprintf("failed to remove stale dump %q", name), err)
			}
			slog.Debug("removed stale dump artifact", "name", name)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to open database %q", src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create dump %q", dst), err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to copy database", err)
	}
	return out.Close()
}
