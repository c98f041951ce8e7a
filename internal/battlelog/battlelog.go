// Package battlelog records the player-visible battle log.
//
// Every entry is kept in order for display and is also emitted as a
// structured zerolog event so resolution can be followed from the process log.
package battlelog

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Entry is a single line of the battle log.
type Entry struct {
	Turn    int    // Turn the entry was written in
	Message string // Human-readable description
}

// Log collects battle log entries.
// A nil *Log is valid and discards everything.
type Log struct {
	entries []Entry
	turn    int
	logger  zerolog.Logger
}

// New creates a log that mirrors entries to the given zerolog logger.
func New(logger zerolog.Logger) *Log {
	return &Log{
		entries: make([]Entry, 0, 64),
		logger:  logger.With().Str("component", "battlelog").Logger(),
	}
}

// NewDiscard creates a log that keeps entries but emits no structured output.
// Useful in tests.
func NewDiscard() *Log {
	return New(zerolog.New(io.Discard))
}

// SetTurn sets the turn number stamped on subsequent entries.
func (l *Log) SetTurn(turn int) {
	if l == nil {
		return
	}
	l.turn = turn
}

// Addf formats and appends an entry.
func (l *Log) Addf(format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.entries = append(l.entries, Entry{Turn: l.turn, Message: msg})
	l.logger.Info().Int("turn", l.turn).Msg(msg)
}

// Debugf writes a diagnostic that is not shown to the player.
func (l *Log) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Debug().Int("turn", l.turn).Msgf(format, args...)
}

// Entries returns a copy of all entries.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the message text of all entries.
func (l *Log) Messages() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Message
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Last returns the most recent entry message, or "" if the log is empty.
func (l *Log) Last() string {
	if l == nil || len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1].Message
}
