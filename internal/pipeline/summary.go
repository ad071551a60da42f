package pipeline

import (
	"time"

	"lyricsync/internal/wordfreq"
)

// Album statuses reported in the run summary.
const (
	StatusOK                  = "ok"
	StatusDocumentsUnreadable = "documents-unreadable"
	StatusFailed              = "failed"
)

// AlbumSummary reports one album's outcome. Every metadata track is counted
// as matched or unmatched; Failed counts items logged as failures (rejected
// documents, invalid metadata rows, duplicate rows).
type AlbumSummary struct {
	Artist    string           `json:"artist"`
	Album     string           `json:"album"`
	Status    string           `json:"status"`
	Tracks    int              `json:"tracks"`
	Matched   int              `json:"matched"`
	Unmatched int              `json:"unmatched"`
	Failed    int              `json:"failed"`
	Orphans   int              `json:"orphan_documents"`
	TopWords  []wordfreq.Entry `json:"top_words,omitempty"`
	Duration  time.Duration    `json:"duration_ns"`
	Error     string           `json:"error,omitempty"`
}

// Summary reports a whole run.
type Summary struct {
	RunID        string         `json:"run_id"`
	Started      time.Time      `json:"started"`
	Finished     time.Time      `json:"finished"`
	Albums       []AlbumSummary `json:"albums"`
	Matched      int            `json:"matched"`
	Unmatched    int            `json:"unmatched"`
	Failed       int            `json:"failed"`
	AlbumsFailed int            `json:"albums_failed"`
	MatchedLog   string         `json:"matched_log"`
	MissingLog   string         `json:"missing_log"`
	MetricsFile  string         `json:"metrics_file,omitempty"`
}

func (s *Summary) tally() {
	s.Matched, s.Unmatched, s.Failed, s.AlbumsFailed = 0, 0, 0, 0
	for _, a := range s.Albums {
		s.Matched += a.Matched
		s.Unmatched += a.Unmatched
		s.Failed += a.Failed
		if a.Status != StatusOK {
			s.AlbumsFailed++
		}
	}
}
