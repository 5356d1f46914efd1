package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/RyanBlaney/voicematch/catalog"
	"github.com/RyanBlaney/voicematch/logging"
)

func main() {
	ctx := context.Background()

	app := &cli.Command{
		Name:  "voicematch",
		Usage: "Voice analysis and song matching engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the catalog database",
				Value: catalog.DefaultDBFile,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			importCommand(),
			profilesCommand(),
			historyCommand(),
			favoriteCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logging.Error(err, "Command failed")
		os.Exit(1)
	}
}

func catalogStore(cmd *cli.Command) (*catalog.SQLiteStore, error) {
	return catalog.NewSQLiteStore(cmd.String("db"))
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("verbose") {
		logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
	}
}
