package out

import (
	"io"

	dashboardout "codestreak/internal/modules/dashboard/port/out"
)

// BellHaptics rings the terminal bell, the closest a terminal gets to a
// light impact.
type BellHaptics struct {
	w io.Writer
}

// NewHaptics returns a bell writer when enabled and a no-op otherwise.
func NewHaptics(w io.Writer, enabled bool) dashboardout.Haptics {
	if !enabled || w == nil {
		return NoopHaptics{}
	}
	return BellHaptics{w: w}
}

func (h BellHaptics) ImpactLight() {
	_, _ = io.WriteString(h.w, "\a")
}

type NoopHaptics struct{}

func (NoopHaptics) ImpactLight() {}
