package editor

// LoadingGuard suppresses edit handling while a view is being populated from a record.
// It is a nesting counter so that populate passes may call each other.
type LoadingGuard struct {
	depth int
}

// Push enters a populate pass.
func (g *LoadingGuard) Push() {
	g.depth++
}

// Pop leaves a populate pass. Extra pops are ignored.
func (g *LoadingGuard) Pop() {
	if g.depth > 0 {
		g.depth--
	}
}

// Loading reports whether any populate pass is in progress.
func (g *LoadingGuard) Loading() bool {
	return g.depth > 0
}

// Depth returns the current nesting depth.
func (g *LoadingGuard) Depth() int {
	return g.depth
}
