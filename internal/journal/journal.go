// internal/journal/journal.go
//
// The journal is the session's activity trail: every user-triggered mutation
// (add to cart, checkout, recipe edits, navigation) appends one line. The
// TUI's log panel tails it; a nil journal silently drops everything so tests
// and headless callers don't have to wire one.

package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type kind string

const (
	kindAction kind = "·"
	kindWarn   kind = "⚠"
	kindFail   kind = "✗"
)

// Journal appends shopper activity to a plain text file.
type Journal struct {
	path string
	now  func() time.Time
}

// Open creates (or reopens) the journal file at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: ensure dir: %w", err)
	}
	return &Journal{path: path, now: time.Now}, nil
}

// Path returns the file backing this journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Action records a completed user action.
func (j *Journal) Action(format string, args ...any) {
	j.write(kindAction, format, args...)
}

// Warn records a recoverable oddity (corrupt state reset, rejected input).
func (j *Journal) Warn(format string, args ...any) {
	j.write(kindWarn, format, args...)
}

// Fail records an operation that was aborted.
func (j *Journal) Fail(format string, args ...any) {
	j.write(kindFail, format, args...)
}

func (j *Journal) write(k kind, format string, args ...any) {
	if j == nil {
		return
	}
	line := fmt.Sprintf("%s %s %s\n",
		j.now().Format("2006-01-02 15:04:05"),
		k,
		strings.TrimSpace(fmt.Sprintf(format, args...)),
	)
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Tail returns up to maxLines of the most recent entries.
func (j *Journal) Tail(maxLines int) []string {
	if j == nil || maxLines <= 0 {
		return nil
	}
	file, err := os.Open(j.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}
