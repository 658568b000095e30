package editor

import "time"

// StatusCapacity is the number of lines the status log keeps.
const StatusCapacity = 60

// Severity marks how a status line is highlighted.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityError
)

// StatusEntry is one line in the status log.
type StatusEntry struct {
	At       time.Time
	Severity Severity
	Message  string
}

// StatusLog is a ring buffer of operator-facing status lines.
type StatusLog struct {
	entries []StatusEntry
	head    int
	count   int
	now     func() time.Time
}

// NewStatusLog creates a status log with a fixed capacity.
func NewStatusLog() *StatusLog {
	return &StatusLog{
		entries: make([]StatusEntry, StatusCapacity),
		now:     time.Now,
	}
}

// Info appends an informational line.
func (sl *StatusLog) Info(msg string) { sl.add(SeverityInfo, msg) }

// Error appends an error line.
func (sl *StatusLog) Error(msg string) { sl.add(SeverityError, msg) }

func (sl *StatusLog) add(sev Severity, msg string) {
	sl.entries[sl.head] = StatusEntry{At: sl.now(), Severity: sev, Message: msg}
	sl.head = (sl.head + 1) % StatusCapacity
	if sl.count < StatusCapacity {
		sl.count++
	}
}

// Len returns the number of stored lines.
func (sl *StatusLog) Len() int { return sl.count }

// Latest returns the newest line, if any.
func (sl *StatusLog) Latest() (StatusEntry, bool) {
	if sl.count == 0 {
		return StatusEntry{}, false
	}
	return sl.entries[(sl.head-1+StatusCapacity)%StatusCapacity], true
}

// Recent returns entries in chronological order (oldest first).
func (sl *StatusLog) Recent() []StatusEntry {
	result := make([]StatusEntry, sl.count)
	for i := 0; i < sl.count; i++ {
		idx := (sl.head - sl.count + i + StatusCapacity) % StatusCapacity
		result[i] = sl.entries[idx]
	}
	return result
}
