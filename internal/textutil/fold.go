package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctuationReplacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u201b", "'",
	"\u2032", "'", "\u00b4", "'", "`", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u2033", `"`,
	"\u2010", "-", "\u2011", "-", "\u2012", "-", "\u2013", "-",
	"\u2014", "-", "\u2015", "-", "\u2212", "-",
	"\u00a0", " ", "\u2007", " ", "\u202f", " ", "\u3000", " ",
	"\u2026", "...",
	"\u200b", "", "\ufeff", "",
)

// FoldMarks decomposes text, drops combining marks, and maps typographic
// quotes, dashes, and non-breaking spaces to their ASCII counterparts.
// Letters outside the Latin script are kept.
func FoldMarks(text string) string {
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, text)
	if err != nil {
		folded = text
	}
	return punctuationReplacer.Replace(folded)
}

// FoldASCII folds text like FoldMarks and then transliterates whatever is
// still outside ASCII.
func FoldASCII(text string) string {
	folded := FoldMarks(text)
	if isASCII(folded) {
		return folded
	}
	return unidecode.Unidecode(folded)
}

// TitleCase capitalizes each word of a display label.
func TitleCase(text string) string {
	return cases.Title(language.Und).String(text)
}

// ValidText reports whether raw bytes are decodable UTF-8 text.
func ValidText(data []byte) bool {
	return utf8.Valid(data)
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
