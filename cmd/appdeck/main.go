package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/five82/appdeck/internal/app"
)

func run(ctx context.Context, cmd *cli.Command) error {
	opts := app.Options{
		ConfigPath:   cmd.String("config"),
		PrefsPath:    cmd.String("prefs"),
		RefreshEvery: cmd.Duration("refresh"),
		SetRefresh:   cmd.IsSet("refresh"),
		Once:         cmd.Bool("once"),
	}
	return app.Run(ctx, opts)
}

func main() {
	os.Exit(execute())
}

func execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:   "appdeck",
		Usage:  "Browse the app catalog served by a remote JSON endpoint",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/appdeck/config.toml",
				Sources:     cli.EnvVars("APPDECK_CONFIG"),
			},
			&cli.StringFlag{
				Name:        "prefs",
				Usage:       "Path to UI preferences file",
				DefaultText: "~/.config/appdeck/prefs.toml",
			},
			&cli.DurationFlag{
				Name:    "refresh",
				Usage:   "Re-fetch the catalog on this interval (0 disables)",
				Sources: cli.EnvVars("APPDECK_REFRESH"),
			},
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Fetch once, print the catalog and exit",
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "appdeck: %v\n", err)
		return 1
	}
	return 0
}
