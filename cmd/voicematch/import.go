package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/RyanBlaney/voicematch/analysis"
	"github.com/RyanBlaney/voicematch/catalog"
	"github.com/RyanBlaney/voicematch/transcode"
)

var errExpectSong = errors.New("expected exactly one argument: path to a WAV file")

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Extract a song's timbre vector and store it in the catalog",
		ArgsUsage: "<song.wav>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Song title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "artist",
				Aliases:  []string{"a"},
				Usage:    "Song artist",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "tag",
				Usage: "Difficulty tag, higher is harder",
			},
			&cli.BoolFlag{
				Name:  "bulk",
				Usage: "Mark the entry as bulk-imported (excluded from recommendations)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errExpectSong, cmd.NArg())
			}

			store, err := catalog.NewSQLiteStore(cmd.String("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			decoder := transcode.NewDecoder(nil)
			audio, err := decoder.DecodeFile(cmd.Args().First())
			if err != nil {
				return err
			}

			extractor, err := analysis.NewFeatureExtractor(nil)
			if err != nil {
				return err
			}
			vector, err := extractor.ExtractTimbreVector(audio.PCM, audio.SampleRate)
			if err != nil {
				return fmt.Errorf("vector extraction failed: %w", err)
			}

			id, err := store.UpsertSong(analysis.SongEntry{
				Title:        cmd.String("title"),
				Artist:       cmd.String("artist"),
				Tag:          cmd.Int("tag"),
				BulkImported: cmd.Bool("bulk"),
				Vector:       &vector,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s - %s (%s)\n", cmd.String("artist"), cmd.String("title"), id)
			return nil
		},
	}
}
