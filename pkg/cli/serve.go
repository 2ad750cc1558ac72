package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/yoas/yoas/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the API server in the foreground",
		Description: `Run the API server in the foreground until SIGINT/SIGTERM.

Configuration comes from the environment: KEY (required), HOST, PORT,
DB_N_LOGS_FOLDER, DB_FILE, MAIN_API_ADDRESS, MAIN_ADDRESS, LOG_LEVEL,
SHUTDOWN_TIMEOUT_SECONDS.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return api.Serve(ctx)
		},
	}
}
