package view

import (
	"sync"
	"time"
)

// Severity classifies a banner message the way the storefront's status
// block did: green for applied, red for rejected, yellow for a no-op.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityFailure
	SeverityNotice
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityFailure:
		return "failure"
	case SeverityNotice:
		return "notice"
	}
	return "unknown"
}

// Message is one dismissible status notification.
type Message struct {
	Title    string
	Text     string
	Severity Severity
}

// Banner is the user-visible, dismissible status surface. A new message
// replaces the current one; when a TTL is set the message hides itself
// after it elapses, and showing again resets the timer.
type Banner struct {
	mu      sync.Mutex
	current *Message
	sink    func(Message)
	ttl     time.Duration
	hide    *time.Timer
}

// NewBanner builds a banner. sink (optional) observes every shown
// message; ttl of 0 disables auto-hide.
func NewBanner(sink func(Message), ttl time.Duration) *Banner {
	return &Banner{sink: sink, ttl: ttl}
}

// Show displays a message, replacing whatever is currently visible.
func (b *Banner) Show(title, text string, severity Severity) {
	msg := Message{Title: title, Text: text, Severity: severity}

	b.mu.Lock()
	b.current = &msg
	if b.hide != nil {
		b.hide.Stop()
		b.hide = nil
	}
	if b.ttl > 0 {
		b.hide = time.AfterFunc(b.ttl, b.Dismiss)
	}
	sink := b.sink
	b.mu.Unlock()

	if sink != nil {
		sink(msg)
	}
}

// Dismiss hides the current message.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
	if b.hide != nil {
		b.hide.Stop()
		b.hide = nil
	}
}

// Current returns the visible message, if any.
func (b *Banner) Current() (Message, bool) {
	if b == nil {
		return Message{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Message{}, false
	}
	return *b.current, true
}
