package diag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sourcelang/slc/internal/source"
)

// Severity distinguishes a hard error from a warning.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single reported message, located in one source file.
type Diagnostic struct {
	Location source.Location
	Severity Severity
	Code     Code
	Message  string
}

// String renders a diagnostic as "path:line:col severity: msg", per the
// wire format every phase agrees on.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Location, d.Severity, d.Message)
}

// Sink is the single process-wide, thread-safe diagnostics collector.
// All returns diagnostics in insertion order, without grouping by path.
// Within a single module that is source order, since each phase is
// single-threaded per module; across modules, insertion order is
// whatever the caller's concurrency produced (spec.md §5: unspecified
// but each diagnostic carries its own location).
type Sink struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends one diagnostic.
func (s *Sink) Report(loc source.Location, sev Severity, code Code, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, Diagnostic{
		Location: loc,
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errorf reports an error-severity diagnostic.
func (s *Sink) Errorf(loc source.Location, code Code, format string, args ...interface{}) {
	s.Report(loc, Error, code, format, args...)
}

// Warnf reports a warning-severity diagnostic.
func (s *Sink) Warnf(loc source.Location, code Code, format string, args ...interface{}) {
	s.Report(loc, Warning, code, format, args...)
}

// All returns a snapshot of every diagnostic reported so far.
func (s *Sink) All() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics recorded, used by a driver
// layer that wants to abort after a threshold (spec.md §5).
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// SortedByLocation returns a copy of All() sorted by (Path, Line, Column),
// which is convenient for deterministic test assertions and for CLI
// output when diagnostics arrived out of cross-module order.
func (s *Sink) SortedByLocation() []Diagnostic {
	items := s.All()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Location, items[j].Location
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return items
}
