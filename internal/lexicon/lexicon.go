package lexicon

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var data embed.FS

// StopwordsNone disables stop-word filtering.
const StopwordsNone = "none"

// Sentiment is one fixed version of the valence lexicon.
type Sentiment struct {
	Version   string             `yaml:"version"`
	Valence   map[string]float64 `yaml:"valence"`
	Boosters  map[string]float64 `yaml:"boosters"`
	Negations []string           `yaml:"negations"`

	negations map[string]struct{}
}

// IsNegation reports whether word negates the sentiment that follows it.
func (s *Sentiment) IsNegation(word string) bool {
	_, ok := s.negations[word]
	return ok || strings.HasSuffix(word, "n't")
}

// Stopwords is one fixed version of a stop-word list.
type Stopwords struct {
	Version string   `yaml:"version"`
	Words   []string `yaml:"words"`

	set map[string]struct{}
}

// Contains reports whether word is a stop word.
func (s *Stopwords) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.set[word]
	return ok
}

// Len returns the number of distinct stop words.
func (s *Stopwords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.set)
}

// LoadSentiment returns the embedded sentiment lexicon for version.
func LoadSentiment(version string) (*Sentiment, error) {
	var lex Sentiment
	if err := decode("sentiment", version, &lex); err != nil {
		return nil, err
	}
	if len(lex.Valence) == 0 {
		return nil, fmt.Errorf("sentiment lexicon %q has no entries", version)
	}
	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, word := range lex.Negations {
		lex.negations[strings.ToLower(word)] = struct{}{}
	}
	return &lex, nil
}

// LoadStopwords returns the embedded stop-word list for version. The version
// "none" yields an empty list.
func LoadStopwords(version string) (*Stopwords, error) {
	if version == StopwordsNone {
		return &Stopwords{Version: StopwordsNone, set: map[string]struct{}{}}, nil
	}
	var list Stopwords
	if err := decode("stopwords", version, &list); err != nil {
		return nil, err
	}
	list.set = make(map[string]struct{}, len(list.Words))
	for _, word := range list.Words {
		list.set[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
	}
	return &list, nil
}

// Versions lists the embedded versions of kind ("sentiment" or "stopwords").
func Versions(kind string) []string {
	entries, err := fs.ReadDir(data, "data")
	if err != nil {
		return nil
	}
	prefix := kind + "-"
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, prefix) {
			versions = append(versions, strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".yaml"))
		}
	}
	slices.Sort(versions)
	return versions
}

func decode(kind, version string, out any) error {
	version = strings.TrimSpace(version)
	if version == "" || strings.ContainsAny(version, `/\`) {
		return fmt.Errorf("%s version %q is invalid", kind, version)
	}
	raw, err := data.ReadFile(path.Join("data", kind+"-"+version+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unknown %s version %q (available: %s)", kind, version, strings.Join(Versions(kind), ", "))
		}
		return fmt.Errorf("read %s %q: %w", kind, version, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s %q: %w", kind, version, err)
	}
	return nil
}
