package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"anilistbot/internal/anilist"
)

var (
	searchID   int
	searchPage int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a search the way the slash commands do and print the result as JSON",
}

var searchAnimeCmd = &cobra.Command{
	Use:   "anime <name>",
	Short: "Search anime by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnimeSearch(cmd, args, "")
	},
}

var searchAiringCmd = &cobra.Command{
	Use:   "airing <name>",
	Short: "Search releasing anime and show the next episode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnimeSearch(cmd, args, anilist.StatusReleasing)
	},
}

var searchCharacterCmd = &cobra.Command{
	Use:   "character <name>",
	Short: "Search characters by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client := anilist.NewClient(cfg.AniListURL, logger)
		res, err := client.SearchCharacters(ctx, anilist.SearchQuery{
			Name: strings.Join(args, " "),
			ID:   searchID,
			Page: searchPage,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func init() {
	for _, c := range []*cobra.Command{searchAnimeCmd, searchAiringCmd, searchCharacterCmd} {
		c.Flags().IntVar(&searchID, "id", 0, "AniList id to narrow the search to")
		c.Flags().IntVar(&searchPage, "page", 1, "Result page")
		searchCmd.AddCommand(c)
	}
}

func runAnimeSearch(cmd *cobra.Command, args []string, status string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := anilist.NewClient(cfg.AniListURL, logger)
	res, err := client.SearchAnime(ctx, anilist.SearchQuery{
		Name:   strings.Join(args, " "),
		ID:     searchID,
		Page:   searchPage,
		Status: status,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
