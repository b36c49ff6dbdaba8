package guiapi

// Modifiers are the modifier keys held down during a frame.
type Modifiers struct {
	Shift   bool
	Control bool
	Alt     bool
}

func (s Modifiers) Any() bool {
	return s.Shift || s.Control || s.Alt
}
