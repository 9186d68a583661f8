package out

import (
	"fmt"
	"io"
	"sync"

	"codestreak/internal/modules/dashboard/domain"
	dashboardout "codestreak/internal/modules/dashboard/port/out"
)

// ChannelNavigator hands navigation requests to the TUI loop, which
// rebuilds the page in the requested mode.
type ChannelNavigator struct {
	ch chan domain.Mode
}

func NewChannelNavigator() *ChannelNavigator {
	return &ChannelNavigator{ch: make(chan domain.Mode, 1)}
}

// Navigate never blocks; a pending request is kept and newer ones dropped.
func (n *ChannelNavigator) Navigate(mode domain.Mode) {
	select {
	case n.ch <- mode:
	default:
	}
}

func (n *ChannelNavigator) Requests() <-chan domain.Mode {
	return n.ch
}

// WriterNavigator is used by one-shot commands, which cannot switch pages
// and instead tell the user where to go.
type WriterNavigator struct {
	mu  sync.Mutex
	w   io.Writer
	hit []domain.Mode
}

func NewWriterNavigator(w io.Writer) *WriterNavigator {
	return &WriterNavigator{w: w}
}

func (n *WriterNavigator) Navigate(mode domain.Mode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hit = append(n.hit, mode)
	if mode == domain.ModeSettings {
		fmt.Fprintln(n.w, "Setup required: run `codestreak settings handles --github <name> --leetcode <name>`.")
		return
	}
	fmt.Fprintf(n.w, "Open the %s page to continue.\n", mode)
}

// Navigated reports whether any navigation was requested.
func (n *WriterNavigator) Navigated() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.hit) > 0
}

var (
	_ dashboardout.Navigator = (*ChannelNavigator)(nil)
	_ dashboardout.Navigator = (*WriterNavigator)(nil)
)
