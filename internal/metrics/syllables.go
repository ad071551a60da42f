package metrics

import (
	"strings"

	"lyricsync/internal/textutil"
)

// Syllables estimates the syllable count of one word from its vowel groups.
// Every word counts at least one syllable.
func Syllables(word string) int {
	w := strings.ToLower(textutil.FoldASCII(word))
	letters := make([]byte, 0, len(w))
	for i := 0; i < len(w); i++ {
		if c := w[i]; c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return 1
	}
	w = string(letters)

	count := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		vowel := strings.IndexByte("aeiouy", w[i]) >= 0
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if count > 1 {
		switch {
		case strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && !strings.HasSuffix(w, "ee"):
			count--
		case strings.HasSuffix(w, "ed") && !strings.HasSuffix(w, "ted") && !strings.HasSuffix(w, "ded"):
			count--
		case strings.HasSuffix(w, "es") && !sibilantPlural(w):
			count--
		}
	}
	return max(count, 1)
}

func sibilantPlural(w string) bool {
	for _, suffix := range []string{"ces", "ses", "zes", "ges", "xes", "shes", "ches"} {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}
