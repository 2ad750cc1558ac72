package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/yoas/yoas/pkg/logging"
)

const (
	name           = "yoas"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "YOAS (Your Own Anti-Spam System) CLI",
		Description: fmt.Sprintf(`YOAS (Your Own Anti-Spam System) CLI

Version: %s
Commit:  %s
Built:   %s

A self-hosted ban-list API in the spirit of the CAS API: record banned user
IDs with the spam message that got them banned, and let chat bots query the
service to recognize known spammers.

serve  - run the API server in the foreground
launch - start the API server detached with output captured to a log file
dump   - export the ban database to a CSV, JSON, or SQLite file`,
			version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			launchCmd(),
			dumpCmd(),
		},
	}
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
