package metrics

import (
	"math"
	"strings"
	"unicode"

	"lyricsync/internal/lexicon"
	"lyricsync/internal/textutil"
)

const (
	capsIncrement    = 0.733
	negationScalar   = -0.74
	exclamationBoost = 0.292
	maxExclamations  = 4
	normalizeAlpha   = 15.0
)

type sentimentToken struct {
	word string
	caps bool
}

// sentiment returns a compound polarity score in [-1, 1].
func sentiment(lex *lexicon.Sentiment, text string) float64 {
	tokens := sentimentTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	capDiff := mixedCase(tokens)

	valences := make([]float64, len(tokens))
	butIndex := -1
	for i, tok := range tokens {
		if tok.word == "but" && butIndex < 0 {
			butIndex = i
		}
		if _, booster := lex.Boosters[tok.word]; booster {
			continue
		}
		v, ok := lex.Valence[tok.word]
		if !ok {
			continue
		}
		if tok.caps && capDiff {
			v += sign(v) * capsIncrement
		}
		for j := 1; j <= 3 && i-j >= 0; j++ {
			prev := tokens[i-j]
			if b, ok := lex.Boosters[prev.word]; ok {
				scalar := b * sign(v)
				if prev.caps && capDiff {
					scalar += sign(v) * capsIncrement
				}
				switch j {
				case 2:
					scalar *= 0.95
				case 3:
					scalar *= 0.9
				}
				v += scalar
			}
			if lex.IsNegation(prev.word) {
				v *= negationScalar
			}
		}
		valences[i] = v
	}

	var sum float64
	for i, v := range valences {
		switch {
		case butIndex < 0:
		case i < butIndex:
			v *= 0.5
		case i > butIndex:
			v *= 1.5
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}

	emphasis := float64(min(strings.Count(text, "!"), maxExclamations)) * exclamationBoost
	if sum > 0 {
		sum += emphasis
	} else {
		sum -= emphasis
	}
	compound := sum / math.Sqrt(sum*sum+normalizeAlpha)
	return math.Max(-1, math.Min(1, compound))
}

func sentimentTokens(text string) []sentimentToken {
	fields := strings.Fields(textutil.FoldASCII(text))
	tokens := make([]sentimentToken, 0, len(fields))
	for _, field := range fields {
		trimmed := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		})
		trimmed = strings.Trim(trimmed, "'")
		if trimmed == "" {
			continue
		}
		tokens = append(tokens, sentimentToken{
			word: strings.ToLower(trimmed),
			caps: allCaps(trimmed),
		})
	}
	return tokens
}

func allCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

// mixedCase reports whether some, but not all, tokens are shouted.
func mixedCase(tokens []sentimentToken) bool {
	shouted := 0
	for _, tok := range tokens {
		if tok.caps {
			shouted++
		}
	}
	return shouted > 0 && shouted < len(tokens)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
