package services

import (
	"sync"
	"time"
)

// NotifierInterface defines the interface for transient status messages
type NotifierInterface interface {
	// Notify replaces the current status message and schedules it to clear
	// after the configured delay
	Notify(message string)

	// Status returns the current message, or "" when none is showing
	Status() string

	// Clear removes the current message immediately
	Clear()
}

// Notifier holds a single transient status message. A newer message
// always replaces an older one, and the older message's pending clear
// must not wipe the newer one; a monotonic token guards against that.
type Notifier struct {
	mu         sync.Mutex
	message    string
	token      uint64
	clearDelay time.Duration
}

// NewNotifier creates a notifier that auto-clears messages after clearDelay
func NewNotifier(clearDelay time.Duration) *Notifier {
	return &Notifier{
		clearDelay: clearDelay,
	}
}

// Notify replaces the current status message and schedules its removal
func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	n.message = message
	n.token++
	token := n.token
	n.mu.Unlock()

	time.AfterFunc(n.clearDelay, func() {
		n.clearIfCurrent(token)
	})
}

// clearIfCurrent clears the message only if no newer one has replaced it
func (n *Notifier) clearIfCurrent(token uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.token == token {
		n.message = ""
	}
}

// Status returns the current message, or "" when none is showing
func (n *Notifier) Status() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Clear removes the current message and invalidates pending timers
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
	n.token++
}
