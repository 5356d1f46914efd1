package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func favoriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Toggle a song as a favorite, or list favorites",
		ArgsUsage: "[song-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "User reference",
				Value:   "local",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			store, err := catalogStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			userRef := cmd.String("user")
			if songID := cmd.Args().First(); songID != "" {
				added, err := store.ToggleFavorite(userRef, songID)
				if err != nil {
					return err
				}
				if added {
					fmt.Println("Added to favorites")
				} else {
					fmt.Println("Removed from favorites")
				}
				return nil
			}

			songs, err := store.ListFavorites(userRef)
			if err != nil {
				return err
			}
			if len(songs) == 0 {
				fmt.Println("No favorites")
				return nil
			}
			for _, song := range songs {
				fmt.Printf("%s  %s - %s\n", song.ID, song.Title, song.Artist)
			}
			return nil
		},
	}
}
