package tetris

import (
	"fmt"
	"strings"
)

// Event categories and keys recorded by State.
const (
	CategoryPiece = "piece"
	CategoryLines = "lines"
	CategoryRound = "round"

	KeySpawn    = "spawn"
	KeyLock     = "lock"
	KeyClear    = "clear"
	KeyGameOver = "game_over"
	KeyRestart  = "restart"
)

// Event is one recorded game occurrence.
type Event struct {
	Tick     int
	Category string // piece, lines, round
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   int    // optional numeric value (rows cleared, score, ...)
}

// String formats the entry as a fixed-width log line.
//
//	[T=00042] piece  lock       T at (18,3)
func (e Event) String() string {
	return fmt.Sprintf("[T=%05d] %-6s %-10s %s", e.Tick, e.Category, e.Key, e.Value)
}

// EventLog records events in order. With a positive capacity it keeps only
// the most recent entries in a ring buffer; with capacity 0 it is unbounded.
type EventLog struct {
	entries  []Event
	head     int
	count    int
	capacity int
}

// NewEventLog creates a log. capacity <= 0 means unbounded.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		return &EventLog{}
	}
	return &EventLog{entries: make([]Event, capacity), capacity: capacity}
}

// Add records a new entry.
func (l *EventLog) Add(tick int, category, key, value string, numVal int) {
	e := Event{Tick: tick, Category: category, Key: key, Value: value, NumVal: numVal}
	if l.capacity == 0 {
		l.entries = append(l.entries, e)
		l.count++
		return
	}
	l.entries[l.head] = e
	l.head = (l.head + 1) % l.capacity
	if l.count < l.capacity {
		l.count++
	}
}

// Len is the number of retained entries.
func (l *EventLog) Len() int {
	return l.count
}

// Entries returns retained entries oldest first.
func (l *EventLog) Entries() []Event {
	if l.capacity == 0 {
		return append([]Event(nil), l.entries...)
	}
	out := make([]Event, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(l.head-l.count+i+l.capacity)%l.capacity]
	}
	return out
}

// Recent returns up to n newest entries, oldest first.
func (l *EventLog) Recent(n int) []Event {
	all := l.Entries()
	if n >= 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the retained log as a single string.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
