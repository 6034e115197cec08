package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LogFile manages the lifecycle of a log file used to capture a full run of
// an unattended invocation (CI) in addition to terminal output.
type LogFile struct {
	Path   string // full path to the log file; empty when disabled or stderr
	file   *os.File
	writer io.Writer
}

// NewLogFile opens a log output according to the destination string:
//   - "none": logging to file disabled (io.Discard)
//   - "-":    os.Stderr
//   - path:   the given file, created along with parent directories
func NewLogFile(dest string) (*LogFile, error) {
	lf := &LogFile{}
	switch dest {
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "-", "":
		lf.writer = os.Stderr
		return lf, nil
	}
	lf.Path = dest
	if dir := filepath.Dir(lf.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	fmt.Fprintf(f, "# domainctl run %s\n", time.Now().UTC().Format(time.RFC3339))
	return lf, nil
}

// Writer returns the destination writer. It never returns nil.
func (lf *LogFile) Writer() io.Writer {
	if lf.writer == nil {
		return os.Stderr
	}
	return lf.writer
}

// Close closes the underlying file if one was opened.
func (lf *LogFile) Close() error {
	if lf.file == nil {
		return nil
	}
	return lf.file.Close()
}
