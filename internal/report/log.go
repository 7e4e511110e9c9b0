package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Log accumulates report lines and mirrors each one to a console writer.
// It is append-only and flushed to a file once at the end of a run.
type Log struct {
	lines []string
	out   io.Writer
}

// NewLog creates an empty log mirroring to out. A nil out mirrors nowhere.
func NewLog(out io.Writer) *Log {
	if out == nil {
		out = io.Discard
	}
	return &Log{out: out}
}

// Println appends a line.
func (l *Log) Println(msg string) {
	fmt.Fprintln(l.out, msg)
	l.lines = append(l.lines, msg)
}

// Printf appends a formatted line.
func (l *Log) Printf(format string, args ...any) {
	l.Println(fmt.Sprintf(format, args...))
}

// Lines returns the lines appended so far.
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String renders the log with every line newline-terminated.
func (l *Log) String() string {
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Save writes the log to path, replacing any existing file.
func (l *Log) Save(fs afero.Fs, path string) error {
	if err := afero.WriteFile(fs, path, []byte(l.String()), 0644); err != nil {
		return fmt.Errorf("writing log %s: %w", path, err)
	}
	return nil
}
