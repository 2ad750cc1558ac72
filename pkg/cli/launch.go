package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/yoas/yoas/pkg/launcher"
	"github.com/yoas/yoas/pkg/serializer"
)

func launchCmd() *cli.Command {
	return &cli.Command{
		Name:  "launch",
		Usage: "Start the API server detached, with output captured to a timestamped log file",
		Description: `Start the API server in its own session, surviving this process and its
terminal. Combined server output is appended to
<logs>/<YYYY-MM-DD__HH-MM-SS±ZZZZ>.log. The server is not supervised;
restarts and log rotation are up to the operator.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: fmt.Sprintf("server bind host (default %s, env HOST)", launcher.DefaultHost),
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: fmt.Sprintf("server bind port (default %s, env PORT)", launcher.DefaultPort),
			},
			&cli.StringFlag{
				Name:  "logs",
				Usage: fmt.Sprintf("folder for the database and log files (default %s, env DB_N_LOGS_FOLDER)", launcher.DefaultLogsFolder),
			},
			&cli.BoolFlag{
				Name:  "attach",
				Usage: "run the server in the foreground instead of detaching (container entrypoint mode)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(serializer.FormatTable),
				Usage: fmt.Sprintf("launch result output format (supported values: %q, %q, %q)",
					serializer.FormatJSON, serializer.FormatYAML, serializer.FormatTable),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			cfg := launcher.NewConfig()
			if v := cmd.String("host"); v != "" {
				cfg.Host = v
			}
			if v := cmd.String("port"); v != "" {
				cfg.Port = v
			}
			if v := cmd.String("logs"); v != "" {
				cfg.LogsFolder = v
			}

			if cmd.Bool("attach") {
				return launcher.Run(cfg)
			}

			res, err := launcher.Launch(cfg)
			if err != nil {
				return fmt.Errorf("failed to launch server: %w", err)
			}

			slog.Info("server launched", "pid", res.PID, "log", res.LogPath)
			return serializer.NewStdoutWriter(outFormat).Serialize(res)
		},
	}
}
