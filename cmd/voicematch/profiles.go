package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/RyanBlaney/voicematch/analysis"
)

func profilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List the built-in reference voice profiles",
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			for _, profile := range analysis.DefaultProfiles() {
				fmt.Printf("%-20s pitch %3.0f Hz  brightness %4.0f Hz  energy %.2f  [%s]\n",
					profile.Name, profile.PitchMean, profile.Brightness, profile.Energy, profile.Style)
				fmt.Printf("    %s\n", profile.Description)
			}
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent analyses for a user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User reference",
				Value:   "local",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of records",
				Value:   10,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			store, err := catalogStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.RecentAnalyses(cmd.String("user"), cmd.Int("limit"))
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No analyses recorded")
				return nil
			}
			for _, record := range records {
				fmt.Printf("%s  score %3d  clarity %-9s  stability %-5s  profile %s\n",
					record.CreatedAt.Format("2006-01-02 15:04"),
					record.Score, record.Clarity, record.Stability, record.MatchedProfile)
			}
			return nil
		},
	}
}
