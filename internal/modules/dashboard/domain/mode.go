package domain

import "fmt"

// Mode selects which widgets a session populates. It never changes during a
// session; switching modes means starting a new one.
type Mode string

const (
	ModeDashboard Mode = "dashboard"
	ModeStatus    Mode = "status"
	ModeSettings  Mode = "settings"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDashboard, ModeStatus, ModeSettings:
		return Mode(s), nil
	case "":
		return ModeDashboard, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// ShowsRings reports whether the mode displays progress rings, and so
// whether celebrations can fire in it.
func (m Mode) ShowsRings() bool {
	return m == ModeDashboard || m == ModeStatus
}

func (m Mode) ShowsHistory() bool {
	return m == ModeDashboard
}
