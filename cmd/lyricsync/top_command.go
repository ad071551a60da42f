package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/config"
	"lyricsync/internal/store"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var (
		artist string
		album  string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print an album's most frequent words from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			artist, album = strings.TrimSpace(artist), strings.TrimSpace(album)
			if artist == "" || album == "" {
				return errors.New("both --artist and --album are required")
			}
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, st *store.Store) error {
				n := limit
				if n <= 0 {
					n = cfg.Analysis.TopWords
				}
				entries, err := st.TopWords(cmd.Context(), artist, album, n)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "No word frequencies stored for %s / %s\n", artist, album)
					return nil
				}
				fmt.Fprintln(out, renderWordTable(entries))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name")
	cmd.Flags().StringVar(&album, "album", "", "Album name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of words (defaults to analysis.top_words)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}
