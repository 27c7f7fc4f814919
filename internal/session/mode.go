package session

import (
	"fmt"
	"strings"
)

// Mode selects what an edit does.
type Mode int

const (
	ModeStart Mode = iota
	ModeEnd
	ModeWall
)

var modeNames = [...]string{"start", "end", "wall"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) valid() bool { return m >= ModeStart && m <= ModeWall }

// ParseMode accepts "start", "end" or "wall", case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
