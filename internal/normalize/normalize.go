package normalize

import (
	"regexp"
	"strings"

	"lyricsync/internal/textutil"
)

// Scope selects which edition qualifiers are considered noise.
type Scope int

const (
	ScopeTrack Scope = iota
	ScopeAlbum
)

func (s Scope) String() string {
	if s == ScopeAlbum {
		return "album"
	}
	return "track"
}

// Key is a canonical, comparable title. Its alphabet is [a-z0-9 ] with single
// spaces and no leading or trailing space.
type Key string

var (
	parenGroupPattern = regexp.MustCompile(`\(([^()]*)\)`)
	dashTailPattern   = regexp.MustCompile(`\s+-\s+([^-]*)$`)
	featTailPattern   = regexp.MustCompile(` (feat|ft|featuring) .*$| (feat|ft|featuring)$`)
	nonKeyPattern     = regexp.MustCompile(`[^a-z0-9]+`)

	trackQualifierPattern = regexp.MustCompile(`\b(versions?|remix(ed)?|mix|edit|radio|live|acoustic|demo|instrumental|explicit|clean|bonus|vault|remaster(ed)?|mono|stereo|single|extended|edition|deluxe|anniversary|feat|ft|featuring|with|from)\b`)
	albumQualifierPattern = regexp.MustCompile(`\b(versions?|deluxe|edition|remaster(ed)?|expanded|anniversary|bonus|explicit|clean|platinum|special|vault)\b`)

	bracketReplacer = strings.NewReplacer("[", "(", "]", ")", "{", "(", "}", ")")
)

// Normalize canonicalizes a title for comparison: diacritics and typographic
// punctuation are folded, case is dropped, and edition qualifiers such as
// "(Taylor's Version)", "[Deluxe]", or "- Remix" are removed. When stripping
// would leave nothing, the qualified form is returned instead.
//
// Normalize is idempotent: Normalize(string(k), s) == k for every key it returns.
// A qualified fallback can itself end in a strippable tail, so passes repeat
// until the key stops changing. Each changing pass shortens the key.
func Normalize(title string, scope Scope) Key {
	key := normalizeOnce(title, scope)
	for {
		next := normalizeOnce(string(key), scope)
		if next == key {
			return key
		}
		key = next
	}
}

func normalizeOnce(title string, scope Scope) Key {
	text := prepare(title)
	text = stripParenQualifiers(text, scope)
	text = stripDashTails(text, scope)
	key := clean(text)
	key = featTailPattern.ReplaceAllString(key, "")
	if key == "" {
		return NormalizeQualified(title, scope)
	}
	return Key(key)
}

// NormalizeQualified canonicalizes a title like Normalize but keeps edition
// qualifiers as ordinary words. It is used to tell apart titles that would
// otherwise collide within one album.
func NormalizeQualified(title string, _ Scope) Key {
	return Key(clean(prepare(title)))
}

func prepare(title string) string {
	text := strings.ToLower(textutil.FoldASCII(title))
	return bracketReplacer.Replace(text)
}

func clean(text string) string {
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "&", " and ")
	text = nonKeyPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func qualifierPattern(scope Scope) *regexp.Regexp {
	if scope == ScopeAlbum {
		return albumQualifierPattern
	}
	return trackQualifierPattern
}

func stripParenQualifiers(text string, scope Scope) string {
	pattern := qualifierPattern(scope)
	for range 4 {
		next := parenGroupPattern.ReplaceAllStringFunc(text, func(group string) string {
			inner := group[1 : len(group)-1]
			if pattern.MatchString(inner) {
				return " "
			}
			return " " + inner + " "
		})
		if next == text {
			break
		}
		text = next
	}
	return text
}

func stripDashTails(text string, scope Scope) string {
	pattern := qualifierPattern(scope)
	for {
		loc := dashTailPattern.FindStringSubmatchIndex(text)
		if loc == nil || !pattern.MatchString(text[loc[2]:loc[3]]) {
			return text
		}
		text = text[:loc[0]]
	}
}
