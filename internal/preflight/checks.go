package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"lyricsync/internal/config"
	"lyricsync/internal/lexicon"
	"lyricsync/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, ok string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, ok)}
}

// CheckStopwords verifies that the configured stop-word list is embedded.
func CheckStopwords(version string) Result {
	const name = "Stop words"
	list, err := lexicon.LoadStopwords(version)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d words)", version, list.Len())}
}

// CheckSentimentLexicon verifies that the configured sentiment lexicon is embedded.
func CheckSentimentLexicon(version string) Result {
	const name = "Sentiment lexicon"
	lex, err := lexicon.LoadSentiment(version)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d entries)", lex.Version, len(lex.Valence))}
}

// CheckDatabase opens the configured store, which applies the schema, and
// closes it again. It uses a 10-second timeout and a single attempt.
func CheckDatabase(ctx context.Context, db config.Database) Result {
	const name = "Database"

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.Open(checkCtx, db)
	if err != nil {
		return Result{Name: name, Detail: summarizeDatabaseError(db, err)}
	}
	if err := st.Close(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (close failed: %v)", st.Target(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s, schema ok)", db.Redacted(), db.Driver)}
}

// summarizeDatabaseError produces a human-readable summary for connection failures.
func summarizeDatabaseError(db config.Database, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s (connection timed out)", db.Redacted())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("%s (database unreachable)", db.Redacted())
	}
	return fmt.Sprintf("%s (%v)", db.Redacted(), err)
}
