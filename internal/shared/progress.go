package shared

import (
	"fmt"
	"io"
)

// Progress reports incremental progress for long-running fetches.
// Implementations must be safe to call from a single goroutine only.
type Progress interface {
	Step(n int)
	Done()
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Step(int) {}
func (NopProgress) Done()    {}

// CountProgress rewrites a single terminal line with a running count,
// e.g. "Fetching patterns ... 3 pages".
type CountProgress struct {
	W     io.Writer
	Label string
	Unit  string
	count int
}

func (p *CountProgress) Step(n int) {
	p.count += n
	fmt.Fprintf(p.W, "\r%s ... %d %s", p.Label, p.count, p.Unit)
}

func (p *CountProgress) Done() {
	if p.count > 0 {
		fmt.Fprintf(p.W, "\r%s ... %d %s\n", p.Label, p.count, p.Unit)
		return
	}
	fmt.Fprintf(p.W, "%s ... done\n", p.Label)
}
