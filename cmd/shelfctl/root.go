package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/client"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type commandContext struct {
	server  string
	timeout time.Duration
	json    bool
}

func (c *commandContext) withClient(fn func(*client.Client) error) error {
	cl := client.New(c.server, c.timeout)
	defer func() { _ = cl.Close() }()
	return fn(cl)
}

func defaultServer() string {
	if v := os.Getenv("SHELF_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Manage a shelf reading board from the terminal",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.server, "server", defaultServer(), "shelf server URL (env SHELF_URL)")
	rootCmd.PersistentFlags().DurationVar(&ctx.timeout, "timeout", 10*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&ctx.json, "json", false, "print raw JSON")

	rootCmd.AddCommand(newBoardCommand(ctx))
	rootCmd.AddCommand(newMoveCommand(ctx))
	rootCmd.AddCommand(newUnfileCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newRateCommand(ctx))
	rootCmd.AddCommand(newNotificationsCommand(ctx))
	rootCmd.AddCommand(newReloadCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
