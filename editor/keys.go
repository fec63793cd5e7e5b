package editor

// Key is a key press as reported by the terminal, e.g. "1", "left", " ".
type Key string

const (
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeySpace Key = " "
)

// HandleKey applies the transport and live-cut bindings: digits 1-9 cut to
// that camera, left/right step one frame, space toggles playback. Keys are
// ignored while a text field has focus. The boolean reports whether the key
// was consumed.
func (s *Session) HandleKey(k Key, focusInText bool) (bool, error) {
	if focusInText {
		return false, nil
	}
	switch k {
	case KeySpace, "space":
		if s.duration <= 0 {
			return true, nil
		}
		_, err := s.sync.TogglePlay()
		return true, err
	case KeyLeft:
		if s.duration <= 0 {
			return true, nil
		}
		_, err := s.sync.FrameStep(-1)
		return true, err
	case KeyRight:
		if s.duration <= 0 {
			return true, nil
		}
		_, err := s.sync.FrameStep(1)
		return true, err
	}
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		_, err := s.LiveCut(int(k[0] - '0'))
		return true, err
	}
	return false, nil
}
