package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/yoas/yoas/pkg/api"
	"github.com/yoas/yoas/pkg/dump"
	"github.com/yoas/yoas/pkg/store"
)

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Export the ban database to a CSV, JSON, or SQLite file",
		Description: `Export the ban database to a local file, or to stdout with --output -.

Column selection follows the order of the --include flags; row ordering
follows the --order-by flags. Both reject duplicates and unknown names.

Examples:

  yoas dump --table users --format csv
  yoas dump --table users --format json --indent 2 --include user_id --include last_message
  yoas dump --table messages --format db --output messages.db
  yoas dump --format db --original-db --output backup.db`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "table",
				Value: string(dump.TableUsers),
				Usage: fmt.Sprintf("table to export (supported values: %q, %q)",
					dump.TableUsers, dump.TableMessages),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(dump.FormatCSV),
				Usage: fmt.Sprintf("output format (supported values: %q, %q, %q)",
					dump.FormatDB, dump.FormatCSV, dump.FormatJSON),
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "column to include, repeatable; omitted means all columns",
			},
			&cli.StringSliceFlag{
				Name:  "order-by",
				Usage: "column to order rows by, repeatable",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file path; '-' for stdout; omitted derives <table>-dump-<timestamp>.<format>",
			},
			&cli.BoolFlag{
				Name:  "original-db",
				Usage: "db format only: produce a 1:1 copy of the live database file",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "json format only: spaces of indentation, 0 for a single line",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "database file to export (default resolved from DB_N_LOGS_FOLDER and DB_FILE)",
			},
		},
		Action: runDump,
	}
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	dbPath := cmd.String("db")
	if dbPath == "" {
		dbPath = api.DBPathFromEnv()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database not found at %q: %w", dbPath, err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", dbPath, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}()

	opts := dump.Options{
		Table:      dump.Table(cmd.String("table")),
		Format:     dump.Format(cmd.String("format")),
		Include:    cmd.StringSlice("include"),
		OrderBy:    cmd.StringSlice("order-by"),
		OriginalDB: cmd.Bool("original-db"),
		Indent:     int(cmd.Int("indent")),
	}

	output := cmd.String("output")
	toStdout := output == "-"

	outPath := output
	if toStdout {
		tmp, err := os.MkdirTemp("", "yoas-dump-")
		if err != nil {
			return fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer os.RemoveAll(tmp) //nolint:errcheck // best effort cleanup
		outPath = filepath.Join(tmp, dump.FileName(opts.Table, opts.Format, time.Now().UTC()))
	} else if outPath == "" {
		outPath = dump.FileName(opts.Table, opts.Format, time.Now().UTC())
	}

	if err := dump.New(st).Dump(ctx, opts, outPath); err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	if toStdout {
		f, err := os.Open(outPath)
		if err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
		defer f.Close()
		if _, err := io.Copy(os.Stdout, f); err != nil {
			return fmt.Errorf("failed to write dump to stdout: %w", err)
		}
		return nil
	}

	fmt.Printf("Wrote %s\n", outPath)
	return nil
}
