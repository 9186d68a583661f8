package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// BurstFrameMsg advances the burst with the matching ID.
type BurstFrameMsg struct{ ID int }

var burstGlyphs = []string{"✦", "·", "✧", "*", "•", "✶"}

// Burst is the one-shot confetti shown when a goal is reached. A spring
// pushes the spread outwards and the burst fades after a fixed number of
// frames. With motion off it renders once, fully spread, without ticking.
type Burst struct {
	id      int
	motion  string
	spring  harmonica.Spring
	fps     time.Duration
	pos     float64
	vel     float64
	frames  int
	palette []string
	active  bool
}

func NewBurst(id int, motion string) Burst {
	b := Burst{id: id, motion: motion, fps: time.Second / 60}
	switch motion {
	case "reduced":
		b.spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
		b.fps = time.Second / 30
	default:
		b.spring = harmonica.NewSpring(harmonica.FPS(60), 8.0, 0.4)
	}
	return b
}

func (b Burst) Active() bool { return b.active }

// Fire starts the burst with the given colors.
func (b *Burst) Fire(palette []string) tea.Cmd {
	b.palette = palette
	b.active = true
	b.vel = 0
	if b.motion == "off" {
		b.pos, b.frames = 1, 0
		return nil
	}
	b.pos = 0
	b.frames = 50
	if b.motion == "reduced" {
		b.frames = 20
	}
	return b.tick()
}

// Clear drops a static burst.
func (b *Burst) Clear() {
	b.active = false
}

func (b Burst) Update(msg tea.Msg) (Burst, tea.Cmd) {
	frame, ok := msg.(BurstFrameMsg)
	if !ok || frame.ID != b.id || !b.active || b.motion == "off" {
		return b, nil
	}
	b.pos, b.vel = b.spring.Update(b.pos, b.vel, 1)
	b.frames--
	if b.frames <= 0 {
		b.active = false
		return b, nil
	}
	return b, b.tick()
}

func (b Burst) tick() tea.Cmd {
	id := b.id
	return tea.Tick(b.fps, func(time.Time) tea.Msg { return BurstFrameMsg{ID: id} })
}

// View renders the burst centered in width cells.
func (b Burst) View(width int) string {
	if !b.active || len(b.palette) == 0 || width <= 0 {
		return ""
	}
	spread := int(max(b.pos, 0) * float64(width/2))
	spread = min(spread, width/2)
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	mid := width / 2
	for i := 0; i <= spread; i += 3 {
		for _, x := range []int{mid - i, mid + i} {
			if x < 0 || x >= width {
				continue
			}
			n := (x + b.id) % len(burstGlyphs)
			color := b.palette[(x/3)%len(b.palette)]
			cells[x] = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(burstGlyphs[n])
		}
	}
	return strings.Join(cells, "")
}
