package engine

// Intents are the movement requests held down during a frame. Strafe turns
// Left and Right into sideways steps instead of rotation.
type Intents struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Strafe  bool
}

// Any reports whether any movement intent is active
func (in Intents) Any() bool {
	return in.Forward || in.Back || in.Left || in.Right
}
