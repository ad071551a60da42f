package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"lyricsync/internal/catalog"
	"lyricsync/internal/lexicon"
	"lyricsync/internal/metrics"
	"lyricsync/internal/wordfreq"
)

type analyzeResult struct {
	Lexicon   string           `json:"lexicon"`
	Stopwords string           `json:"stopwords"`
	Metrics   metrics.Record   `json:"metrics"`
	TopWords  []wordfreq.Entry `json:"top_words"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		top    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [FILE|-]",
		Short: "Print lyric metrics and top words for one text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			sentiment, err := lexicon.LoadSentiment(cfg.Analysis.SentimentLexicon)
			if err != nil {
				return err
			}
			stop, err := lexicon.LoadStopwords(cfg.Analysis.Stopwords)
			if err != nil {
				return err
			}

			text := catalog.CleanLyrics(raw)
			n := top
			if n <= 0 {
				n = cfg.Analysis.TopWords
			}
			result := analyzeResult{
				Lexicon:   sentiment.Version,
				Stopwords: stop.Version,
				Metrics:   metrics.New(sentiment, stop).Compute(text),
				TopWords:  wordfreq.Top(wordfreq.NewCounter(stop).Count(text), n),
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderAnalysis(result))
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of top words to print (defaults to analysis.top_words)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func renderAnalysis(r analyzeResult) string {
	m := r.Metrics
	metricRows := [][]string{
		{"Words", strconv.Itoa(m.Words)},
		{"Lines", strconv.Itoa(m.Lines)},
		{"Characters", strconv.Itoa(m.Chars)},
		{"Sentences", strconv.Itoa(m.Sentences)},
		{"Syllables", strconv.Itoa(m.Syllables)},
		{"Readability", strconv.FormatFloat(m.Readability, 'f', 2, 64)},
		{"Sentiment (" + r.Lexicon + ")", strconv.FormatFloat(m.Sentiment, 'f', 3, 64)},
		{"Lexical density", strconv.FormatFloat(m.LexicalDensity, 'f', 3, 64)},
	}
	out := renderTable([]string{"Metric", "Value"}, metricRows, []columnAlignment{alignLeft, alignRight}, nil) + "\n"
	if len(r.TopWords) == 0 {
		return out
	}
	return out + renderWordTable(r.TopWords) + "\n"
}

func renderWordTable(entries []wordfreq.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Word, strconv.Itoa(e.Count)})
	}
	return renderTable([]string{"#", "Word", "Count"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}, nil)
}
