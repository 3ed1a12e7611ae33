package activity

import (
	"sync"
	"time"
)

// Kind classifies an activity entry.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Entry is one immutable record of an action outcome.
type Entry struct {
	Kind    Kind
	Message string
	Link    string // optional explorer URL for the tx or address
	At      time.Time
}

// Log is a session-scoped, most-recent-first record of action outcomes.
// Entries are prepended and never removed; the log has no cap because it
// lives only as long as the session.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLog creates an empty activity log.
func NewLog() *Log {
	return &Log{}
}

// Append inserts an entry at the head of the log.
func (l *Log) Append(e Entry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry{e}, l.entries...)
}

// Info appends an informational entry.
func (l *Log) Info(msg string) { l.Append(Entry{Kind: KindInfo, Message: msg}) }

// Success appends a success entry with an optional explorer link.
func (l *Log) Success(msg, link string) {
	l.Append(Entry{Kind: KindSuccess, Message: msg, Link: link})
}

// Error appends an error entry.
func (l *Log) Error(msg string) { l.Append(Entry{Kind: KindError, Message: msg}) }

// View returns a snapshot copy of the log, most recent first.
func (l *Log) View() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
