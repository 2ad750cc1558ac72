package bans

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yoas/yoas/pkg/defaults"
	"github.com/yoas/yoas/pkg/dump"
	"github.com/yoas/yoas/pkg/errors"
)

// HandleDump serves GET /dump, producing a database export and returning it
// as an attachment. Stale dump artifacts in the work directory are removed
// first; the live database files never match the artifact name pattern and
// are kept.
func (s *Service) HandleDump(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	opts, err := dumpOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := dump.CleanArtifacts(s.workDir); err != nil {
		slog.Warn("failed to clean dump artifacts", "dir", s.workDir, "error", err)
	}

	name := dump.FileName(opts.Table, opts.Format, time.Now().UTC())
	outPath := filepath.Join(s.workDir, name)

	ctx, cancel := context.WithTimeout(r.Context(), defaults.DumpHandlerTimeout)
	defer cancel()

	if err := s.dumper.Dump(ctx, opts, outPath); err != nil {
		if errors.HasCode(err, errors.ErrCodeInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("dump failed", "table", opts.Table, "format", opts.Format, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("dump produced", "table", opts.Table, "format", opts.Format, "file", name)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, outPath)
}

// dumpOptions parses the dump query parameters. Omitted table and file_format
// default to users and csv. include and order_by repeat, e.g.
// ?include=user_id&include=last_message.
func dumpOptions(r *http.Request) (dump.Options, error) {
	q := r.URL.Query()

	opts := dump.Options{
		Table:   dump.TableUsers,
		Format:  dump.FormatCSV,
		Include: q["include"],
		OrderBy: q["order_by"],
	}

	if v := q.Get("table"); v != "" {
		opts.Table = dump.Table(v)
	}
	if v := q.Get("file_format"); v != "" {
		opts.Format = dump.Format(v)
	}

	if raw := q.Get("original_db"); raw != "" {
		originalDB, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("original_db must be a boolean, got %q", raw)
		}
		opts.OriginalDB = originalDB
	}

	if raw := q.Get("indent"); raw != "" {
		indent, err := strconv.Atoi(raw)
		if err != nil || indent < 0 {
			return opts, fmt.Errorf("indent must be a non-negative integer, got %q", raw)
		}
		opts.Indent = indent
	}

	return opts, nil
}
