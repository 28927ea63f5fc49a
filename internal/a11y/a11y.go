// Package a11y provides the accessibility announcement hook for the editor.
//
// Edit operations announce what just happened (a character typed or deleted,
// a region entered or left) through an Announcer. Announcements are
// fire-and-forget: callers never consume a return value, and a failed or
// discarded announcement never affects editing.
package a11y

import "strings"

// Announcer receives spoken-feedback notifications from edit operations.
type Announcer interface {
	// Queue adds a message to the pending announcement, to be spoken
	// together with any other messages queued during the same operation.
	Queue(msg string)

	// Alert interrupts any pending announcement with an immediate message.
	Alert(msg string)
}

// Live is an in-process Announcer that records announcements in order.
// It backs tests and the terminal demo; a real screen-reader integration
// would forward the same calls to an ARIA live region.
type Live struct {
	pending []string
	spoken  []string
}

// NewLive returns an empty Live announcer.
func NewLive() *Live {
	return &Live{}
}

// Queue appends msg to the pending announcement.
func (l *Live) Queue(msg string) {
	if msg == "" {
		return
	}
	l.pending = append(l.pending, msg)
}

// Alert drops anything pending and speaks msg immediately.
func (l *Live) Alert(msg string) {
	l.pending = l.pending[:0]
	if msg != "" {
		l.spoken = append(l.spoken, msg)
	}
}

// Flush speaks the pending announcement as one utterance.
func (l *Live) Flush() {
	if len(l.pending) == 0 {
		return
	}
	l.spoken = append(l.spoken, strings.Join(l.pending, " "))
	l.pending = l.pending[:0]
}

// Spoken returns every utterance spoken so far, oldest first.
func (l *Live) Spoken() []string {
	out := make([]string, len(l.spoken))
	copy(out, l.spoken)
	return out
}

// Reset discards all recorded utterances and pending messages.
func (l *Live) Reset() {
	l.pending = l.pending[:0]
	l.spoken = l.spoken[:0]
}

// Nop discards every announcement.
type Nop struct{}

// Queue implements Announcer.
func (Nop) Queue(string) {}

// Alert implements Announcer.
func (Nop) Alert(string) {}
