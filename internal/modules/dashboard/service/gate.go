package service

import "sync"

// Gate is the reference counted busy indicator. The listener sees only the
// idle→busy and busy→idle transitions, in order, and must not call back
// into the gate.
type Gate struct {
	mu       sync.Mutex
	depth    int
	listener func(busy bool)
}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) SetListener(fn func(busy bool)) {
	g.mu.Lock()
	g.listener = fn
	g.mu.Unlock()
}

func (g *Gate) Enter() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.depth++
	if g.depth == 1 && g.listener != nil {
		g.listener(true)
	}
}

// Exit is floored at zero, so an unmatched call is harmless.
func (g *Gate) Exit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.depth == 0 {
		return
	}
	g.depth--
	if g.depth == 0 && g.listener != nil {
		g.listener(false)
	}
}

// Do runs fn between Enter and Exit.
func (g *Gate) Do(fn func() error) error {
	g.Enter()
	defer g.Exit()
	return fn()
}

func (g *Gate) Busy() bool {
	return g.Depth() > 0
}

func (g *Gate) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth
}
