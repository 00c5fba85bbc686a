package diagnostic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Rename records a wrapper class renamed to keep names unique.
type Rename struct {
	From   string
	To     string
	Reason string
}

// Summary accumulates the counters of one pass.
type Summary struct {
	Candidates    int
	Modifications int
	Deletions     int
	Renames       []Rename
}

// AddRename records a rename.
func (s *Summary) AddRename(from, to, reason string) {
	s.Renames = append(s.Renames, Rename{From: from, To: to, Reason: reason})
}

// Lines renders the summary, one fact per line.
func (s *Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("%d candidate(s) being considered", s.Candidates),
		fmt.Sprintf("%d modification(s) to original code", s.Modifications),
		fmt.Sprintf("%d deletion(s) from original code", s.Deletions),
	}

	for _, r := range s.Renames {
		line := fmt.Sprintf("renamed %s to %s", r.From, r.To)
		if r.Reason != "" {
			line += " (" + r.Reason + ")"
		}

		lines = append(lines, line)
	}

	return lines
}

// String returns the summary lines joined by newlines.
func (s *Summary) String() string {
	return strings.Join(s.Lines(), "\n") + "\n"
}

// WriteSummary writes the summary to path, creating parent directories.
func WriteSummary(path string, s *Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		err := os.MkdirAll(dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating summary directory: %w", err)
		}
	}

	err := os.WriteFile(path, []byte(s.String()), filePerm)
	if err != nil {
		return fmt.Errorf("writing summary file %s: %w", path, err)
	}

	return nil
}
