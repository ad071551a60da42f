package catalog

import (
	"regexp"
	"strings"

	"github.com/k3a/html2text"
)

var (
	htmlTagPattern     = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)
	embedMarkerPattern = regexp.MustCompile(`\d*\s*Embed\s*$`)
)

const (
	headerScanLines    = 3
	suggestionsPrefix  = "You might also like"
	descriptionTrailer = "Read More"
)

// CleanLyrics strips scraping residue from a lyric document: HTML markup,
// the provider's title header and description blurb, inline suggestion
// banners, and the trailing embed counter.
func CleanLyrics(text string) string {
	if htmlTagPattern.MatchString(text) {
		text = html2text.HTML2Text(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	lines = dropHeader(lines)

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasSuffix(trimmed, descriptionTrailer) {
			continue
		}
		if rest, ok := strings.CutPrefix(trimmed, suggestionsPrefix); ok {
			if rest = strings.TrimSpace(rest); rest == "" {
				continue
			}
			line = rest
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	for i := len(kept) - 1; i >= 0; i-- {
		if strings.TrimSpace(kept[i]) == "" {
			continue
		}
		kept[i] = strings.TrimRight(embedMarkerPattern.ReplaceAllString(kept[i], ""), " \t")
		break
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// dropHeader removes the "<n> Contributors ... Lyrics" header block when it
// appears at the top of the document, plus any blank lines after it.
func dropHeader(lines []string) []string {
	limit := min(headerScanLines, len(lines))
	for i := range limit {
		if !strings.Contains(lines[i], "Lyrics") {
			continue
		}
		rest := lines[i+1:]
		for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
			rest = rest[1:]
		}
		return rest
	}
	return lines
}
