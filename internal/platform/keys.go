package platform

// KeyState tracks key levels for event-driven windows. A press is latched
// until it has been sampled once, so a press and release delivered in the
// same event drain still reads as down.
type KeyState struct {
	down    map[Key]bool
	latched map[Key]bool
}

// Set records a key event.
func (s *KeyState) Set(key Key, down bool) {
	if s.down == nil {
		s.down = map[Key]bool{}
		s.latched = map[Key]bool{}
	}
	s.down[key] = down
	if down {
		s.latched[key] = true
	}
}

// Sample reports whether key is down or was pressed since the previous
// Sample of key.
func (s *KeyState) Sample(key Key) bool {
	pressed := s.down[key] || s.latched[key]
	delete(s.latched, key)
	return pressed
}
