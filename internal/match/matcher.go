package match

import (
	"cmp"
	"slices"

	"lyricsync/internal/catalog"
	"lyricsync/internal/normalize"
)

// Reason explains a matching outcome. Values are stable and appear in match logs.
type Reason string

const (
	ReasonMatched           Reason = "matched"
	ReasonNoCandidate       Reason = "no-candidate"
	ReasonBelowThreshold    Reason = "below-threshold"
	ReasonMalformedDocument Reason = "malformed-document"
	ReasonDuplicateDocument Reason = "duplicate-document"
)

// Candidate is one scored (track, document) pair. Track and Document index
// the slices passed to Match.
type Candidate struct {
	Track    int
	Document int
	Score    float64
	Accepted bool
}

// Decision is the outcome for one track.
type Decision struct {
	Track int
	// Document is -1 when the track is unmatched.
	Document int
	// Score is the accepted score, or the best score seen when unmatched.
	Score       float64
	Reason      Reason
	TrackKey    normalize.Key
	DocumentKey normalize.Key
}

// Matched reports whether a document was assigned to the track.
func (d Decision) Matched() bool {
	return d.Document >= 0
}

// DocumentOutcome reports a document that was not bound to any track.
type DocumentOutcome struct {
	Document int
	Title    string
	Key      normalize.Key
	Reason   Reason
	Score    float64
	Err      error
}

// Result covers every track of one album and every document that was left over.
type Result struct {
	// Decisions holds one entry per track, in track order.
	Decisions []Decision
	// Candidates is the scoring arena, in (track, document) order.
	Candidates []Candidate
	// Rejected documents never entered scoring.
	Rejected []DocumentOutcome
	// Orphans are usable documents no track accepted.
	Orphans      []DocumentOutcome
	TrackKeys    []normalize.Key
	DocumentKeys []normalize.Key
}

// MatchedCount returns the number of tracks with an assigned document.
func (r Result) MatchedCount() int {
	n := 0
	for _, d := range r.Decisions {
		if d.Matched() {
			n++
		}
	}
	return n
}

// Matcher aligns lyric documents with the tracks of one album.
type Matcher struct {
	policy Policy
}

// New returns a Matcher using policy, with invalid fields replaced by defaults.
func New(policy Policy) *Matcher {
	return &Matcher{policy: policy.normalized()}
}

// Policy returns the effective policy.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// Match assigns documents to tracks one-to-one. Only the given album's tracks
// and documents are compared. Malformed documents are reported, not scored; an
// empty pool leaves every track unmatched with no error.
func (m *Matcher) Match(tracks []catalog.Track, docs []catalog.Document) Result {
	titles := make([]string, len(tracks))
	for i, track := range tracks {
		titles[i] = track.Name
	}
	set := normalize.NewTitleSet(titles, normalize.ScopeTrack)

	result := Result{
		Decisions:    make([]Decision, len(tracks)),
		TrackKeys:    set.Keys(),
		DocumentKeys: make([]normalize.Key, len(docs)),
	}

	pool := m.admitDocuments(set, docs, &result)

	result.Candidates = make([]Candidate, 0, len(tracks)*len(pool))
	best := make([]float64, len(tracks))
	for ti := range tracks {
		for _, di := range pool {
			score := similarity(m.policy, result.TrackKeys[ti], result.DocumentKeys[di])
			best[ti] = max(best[ti], score)
			result.Candidates = append(result.Candidates, Candidate{Track: ti, Document: di, Score: score})
		}
	}

	order := make([]int, 0, len(result.Candidates))
	for idx, c := range result.Candidates {
		if c.Score >= m.policy.AcceptThreshold {
			order = append(order, idx)
		}
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return m.compareCandidates(&result, tracks, docs, x, y)
	})

	trackUsed := make([]bool, len(tracks))
	docUsed := make([]bool, len(docs))
	for i := range result.Decisions {
		result.Decisions[i] = Decision{Track: i, Document: -1, TrackKey: result.TrackKeys[i], Score: best[i]}
	}
	for _, idx := range order {
		c := &result.Candidates[idx]
		if trackUsed[c.Track] || docUsed[c.Document] {
			continue
		}
		c.Accepted = true
		trackUsed[c.Track] = true
		docUsed[c.Document] = true
		result.Decisions[c.Track] = Decision{
			Track:       c.Track,
			Document:    c.Document,
			Score:       c.Score,
			Reason:      ReasonMatched,
			TrackKey:    result.TrackKeys[c.Track],
			DocumentKey: result.DocumentKeys[c.Document],
		}
	}

	for i := range result.Decisions {
		d := &result.Decisions[i]
		if d.Matched() {
			continue
		}
		if len(pool) > 0 && best[i] >= m.policy.CandidateFloor && best[i] > 0 {
			d.Reason = ReasonBelowThreshold
		} else {
			d.Reason = ReasonNoCandidate
		}
	}

	for _, di := range pool {
		if docUsed[di] {
			continue
		}
		var top float64
		for _, c := range result.Candidates {
			if c.Document == di {
				top = max(top, c.Score)
			}
		}
		result.Orphans = append(result.Orphans, DocumentOutcome{
			Document: di,
			Title:    docs[di].Title,
			Key:      result.DocumentKeys[di],
			Reason:   ReasonNoCandidate,
			Score:    top,
		})
	}
	return result
}

// admitDocuments filters malformed and duplicate documents out of the pool and
// returns the indices of the remaining ones in document order.
func (m *Matcher) admitDocuments(set *normalize.TitleSet, docs []catalog.Document, result *Result) []int {
	byOrder := make([]int, len(docs))
	for i := range docs {
		byOrder[i] = i
	}
	slices.SortStableFunc(byOrder, func(a, b int) int {
		return cmp.Compare(docs[a].Order, docs[b].Order)
	})

	pool := make([]int, 0, len(docs))
	seen := make(map[normalize.Key]int, len(docs))
	for _, di := range byOrder {
		doc := docs[di]
		key := set.KeyFor(doc.Title)
		result.DocumentKeys[di] = key
		if !doc.Usable() || key == "" {
			result.Rejected = append(result.Rejected, DocumentOutcome{
				Document: di,
				Title:    doc.Title,
				Key:      key,
				Reason:   ReasonMalformedDocument,
				Err:      doc.Err,
			})
			continue
		}
		if _, dup := seen[key]; dup {
			result.Rejected = append(result.Rejected, DocumentOutcome{
				Document: di,
				Title:    doc.Title,
				Key:      key,
				Reason:   ReasonDuplicateDocument,
			})
			continue
		}
		seen[key] = di
		pool = append(pool, di)
	}
	return pool
}

// compareCandidates orders accepted-eligible pairs: higher score first, then
// the pair whose track position is closer to the document's position, then
// lexical order of the track key and document key, then arena index.
func (m *Matcher) compareCandidates(r *Result, tracks []catalog.Track, docs []catalog.Document, x, y int) int {
	a, b := r.Candidates[x], r.Candidates[y]
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(distance(tracks[a.Track], docs[a.Document]), distance(tracks[b.Track], docs[b.Document])); c != 0 {
		return c
	}
	if c := cmp.Compare(r.TrackKeys[a.Track], r.TrackKeys[b.Track]); c != 0 {
		return c
	}
	if c := cmp.Compare(r.DocumentKeys[a.Document], r.DocumentKeys[b.Document]); c != 0 {
		return c
	}
	return cmp.Compare(x, y)
}

func distance(track catalog.Track, doc catalog.Document) int {
	d := track.Position() - doc.Order
	if d < 0 {
		return -d
	}
	return d
}
