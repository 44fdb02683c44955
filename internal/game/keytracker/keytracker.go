// Package keytracker turns level-triggered key state into edge events.
package keytracker

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// Observe records this frame's state and reports a released-to-pressed edge.
func (k *KeyStateTracker) Observe(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}
