package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lyricsync/internal/config"
	"lyricsync/internal/store"
)

type storeSummary struct {
	Database string             `json:"database"`
	Counts   store.TableCounts  `json:"counts"`
	Albums   []store.AlbumStats `json:"albums"`
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print stored albums and row counts per table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, st *store.Store) error {
				counts, err := st.Counts(cmd.Context())
				if err != nil {
					return err
				}
				albums, err := st.AlbumSummaries(cmd.Context())
				if err != nil {
					return err
				}
				result := storeSummary{Database: st.Target(), Counts: counts, Albums: albums}
				if asJSON {
					return writeJSON(cmd, result)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderStoreSummary(result))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func renderStoreSummary(s storeSummary) string {
	c := s.Counts
	countRows := [][]string{
		{"artists", strconv.Itoa(c.Artists)},
		{"albums", strconv.Itoa(c.Albums)},
		{"tracks", strconv.Itoa(c.Tracks)},
		{"lyrics", strconv.Itoa(c.Lyrics)},
		{"lyrics with text", strconv.Itoa(c.WithText)},
		{"word_frequencies_track", strconv.Itoa(c.TrackWords)},
		{"word_frequencies_album", strconv.Itoa(c.AlbumWords)},
	}
	out := fmt.Sprintf("Database: %s\n", s.Database)
	out += renderTable([]string{"Table", "Rows"}, countRows, []columnAlignment{alignLeft, alignRight}, nil) + "\n"
	if len(s.Albums) == 0 {
		return out
	}
	rows := make([][]string, 0, len(s.Albums))
	for _, a := range s.Albums {
		rows = append(rows, []string{
			a.Artist,
			a.Album,
			strconv.Itoa(a.Tracks),
			strconv.Itoa(a.WithLyrics),
			formatOptional(a.AvgSentiment, 3),
			formatOptional(a.AvgReadability, 1),
		})
	}
	out += renderTable(
		[]string{"Artist", "Album", "Tracks", "With Lyrics", "Avg Sentiment", "Avg Readability"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		nil,
	) + "\n"
	return out
}

func formatOptional(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
