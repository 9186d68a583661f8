package domain

// Celebrations is the one-shot completion state of a session. A metric moves
// from not celebrated to celebrated once and stays there.
type Celebrations struct {
	fired map[Metric]bool
}

func NewCelebrations() Celebrations {
	return Celebrations{fired: map[Metric]bool{}}
}

// Evaluate fires the metric's celebration when current reaches a positive
// goal for the first time in the session. It reports whether it fired.
func (c *Celebrations) Evaluate(m Metric, current, goal int) bool {
	if goal <= 0 || current < goal {
		return false
	}
	if c.fired == nil {
		c.fired = map[Metric]bool{}
	}
	if c.fired[m] {
		return false
	}
	c.fired[m] = true
	return true
}

func (c Celebrations) Fired(m Metric) bool {
	return c.fired[m]
}

func (c Celebrations) Clone() Celebrations {
	out := NewCelebrations()
	for k, v := range c.fired {
		out.fired[k] = v
	}
	return out
}
