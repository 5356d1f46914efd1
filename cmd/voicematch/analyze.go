package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/RyanBlaney/voicematch/analysis"
	"github.com/RyanBlaney/voicematch/catalog"
	"github.com/RyanBlaney/voicematch/logging"
)

var errExpectClip = errors.New("expected exactly one argument: path to a WAV clip")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a voice clip and recommend songs",
		ArgsUsage: "<clip.wav>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User reference recorded with the analysis",
				Value:   "local",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json",
				Value:   "console",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Radar jitter seed (0 disables jitter)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errExpectClip, cmd.NArg())
			}

			store := openStore(cmd)
			if store != nil {
				defer store.Close()
			}

			cfg := &analysis.AnalyzerConfig{}
			if seed := cmd.Int64("seed"); seed != 0 {
				cfg.Jitter = rand.New(rand.NewSource(seed))
			}

			analyzer, err := analysis.NewAnalyzer(storeOrNil(store), cfg)
			if err != nil {
				return err
			}

			result, err := analyzer.Analyze(ctx, cmd.Args().First(), cmd.String("user"))
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			return outputResult(result, cmd.String("format"))
		},
	}
}

// openStore opens the catalog, tolerating failure: analysis still runs with
// a degraded fallback result when the database is unreachable.
func openStore(cmd *cli.Command) *catalog.SQLiteStore {
	store, err := catalog.NewSQLiteStore(cmd.String("db"))
	if err != nil {
		logging.Warn("Catalog unavailable, analysis will degrade", logging.Fields{
			"db":    cmd.String("db"),
			"error": err.Error(),
		})
		return nil
	}
	return store
}

// storeOrNil avoids handing the analyzer a non-nil interface wrapping a nil
// pointer
func storeOrNil(store *catalog.SQLiteStore) analysis.CatalogStore {
	if store == nil {
		return nil
	}
	return store
}

func outputResult(result *analysis.Result, format string) error {
	if format == "json" {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Fprintf(os.Stdout, "Score:      %d\n", result.Score)
	fmt.Fprintf(os.Stdout, "Clarity:    %s\n", result.Clarity)
	fmt.Fprintf(os.Stdout, "Stability:  %s\n", result.Stability)
	fmt.Fprintf(os.Stdout, "Profile:    %s (%s)\n", result.MatchedProfile.Name, result.MatchedProfile.Description)
	if result.MatchedSongTitle != "" {
		fmt.Fprintf(os.Stdout, "Best match: %s - %s\n", result.MatchedSongArtist, result.MatchedSongTitle)
	}

	fmt.Fprintln(os.Stdout, "\nRadar:")
	for _, point := range result.Radar {
		fmt.Fprintf(os.Stdout, "  %-12s %3d (reference %d, ceiling %d)\n",
			point.Axis, point.UserValue, point.Reference, point.Ceiling)
	}

	printTier(os.Stdout, "Comfort picks", result.Comfort)
	printTier(os.Stdout, "Challenge picks", result.Challenge)

	if len(result.Degraded) > 0 {
		fmt.Fprintf(os.Stdout, "\nDegraded: %v\n", result.Degraded)
	}
	return nil
}

func printTier(w *os.File, title string, songs []analysis.Recommendation) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(songs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, song := range songs {
		fmt.Fprintf(w, "  %s - %s  [%d%%, %s]\n", song.Artist, song.Title,
			song.SimilarityScore, song.TagLabel)
	}
}
