package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lyricsync/internal/config"
	"lyricsync/internal/pipeline"
	"lyricsync/internal/preflight"
	"lyricsync/internal/store"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir string
		workers  int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every album under the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if inputDir != "" {
				expanded, err := config.ExpandPath(inputDir)
				if err != nil {
					return fmt.Errorf("resolve input directory: %w", err)
				}
				cfg.Paths.InputDir = expanded
			}
			if workers > 0 {
				cfg.Pipeline.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			if err := preflight.Err(preflight.RunAll(cmd.Context(), cfg)); err != nil {
				return err
			}

			logger, err := ctx.logger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return ctx.withStore(signalCtx, func(cfg *config.Config, st *store.Store) error {
				runner, err := pipeline.New(cfg, st, logger)
				if err != nil {
					return err
				}
				summary, runErr := runner.Run(signalCtx)
				if summary != nil {
					if asJSON {
						if err := writeJSON(cmd, summary); err != nil {
							return err
						}
					} else {
						fmt.Fprint(cmd.OutOrStdout(), renderRunSummary(summary, shouldColorize(cmd.OutOrStdout())))
					}
				}
				return runErr
			})
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "Input catalog directory (overrides paths.input_dir)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent album workers (overrides pipeline.workers)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")
	return cmd
}

func renderRunSummary(s *pipeline.Summary, colorize bool) string {
	headers := []string{"Artist", "Album", "Status", "Tracks", "Matched", "Unmatched", "Failed", "Orphans", "Top Words"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(s.Albums))
	tracks, orphans := 0, 0
	for _, a := range s.Albums {
		words := make([]string, 0, 5)
		for i, e := range a.TopWords {
			if i == 5 {
				break
			}
			words = append(words, e.Word)
		}
		rows = append(rows, []string{
			a.Artist,
			a.Album,
			statusLabel(a.Status, colorize),
			strconv.Itoa(a.Tracks),
			strconv.Itoa(a.Matched),
			strconv.Itoa(a.Unmatched),
			strconv.Itoa(a.Failed),
			strconv.Itoa(a.Orphans),
			strings.Join(words, ", "),
		})
		tracks += a.Tracks
		orphans += a.Orphans
	}
	footer := []string{
		"Total", fmt.Sprintf("%d albums", len(s.Albums)), fmt.Sprintf("%d failed", s.AlbumsFailed),
		strconv.Itoa(tracks), strconv.Itoa(s.Matched), strconv.Itoa(s.Unmatched), strconv.Itoa(s.Failed), strconv.Itoa(orphans), "",
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished in %s\n", s.RunID, s.Finished.Sub(s.Started).Round(time.Millisecond))
	if len(rows) > 0 {
		b.WriteString(renderTable(headers, rows, aligns, footer))
		b.WriteString("\n")
	} else {
		b.WriteString("No albums found\n")
	}
	fmt.Fprintf(&b, "Matched log: %s\nMissing log: %s\n", s.MatchedLog, s.MissingLog)
	if s.MetricsFile != "" {
		fmt.Fprintf(&b, "Metrics:     %s\n", s.MetricsFile)
	}
	return b.String()
}
