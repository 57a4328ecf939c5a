package engine

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

const (
	DefaultMovetime = time.Second

	MaxMovetime        = 24 * time.Hour
	MaxDepth           = 99
	MaxNodes    uint64 = math.MaxUint64

	minMovetime = 10 * time.Millisecond

	// an iteration is not started past half the budget, a running one is cut at four times
	movetimeIterationRatio = 2
	movetimeAbortRatio     = 4

	pollMask = 0xFFFF
)

type ClockMode uint8

const (
	ClockModeInfinite ClockMode = iota
	ClockModeMovetime
	ClockModeDepth
	ClockModeNodes
)

func (m ClockMode) String() string {
	switch m {
	case ClockModeInfinite:
		return "infinite"
	case ClockModeMovetime:
		return "movetime"
	case ClockModeDepth:
		return "depth"
	case ClockModeNodes:
		return "nodes"
	default:
		return ""
	}
}

type Clock struct {
	mode           ClockMode
	targetMovetime time.Duration
	targetDepth    int
	targetNodes    uint64

	start    time.Time
	abort    *atomic.Bool
	canceled atomic.Bool
	stopCh   chan struct{}
}

func NewClock() *Clock {
	return &Clock{}
}

type ClockConfig struct {
	Movetime time.Duration

	Depth int

	Nodes uint64

	// Abort is raised by the caller to stop a running search.
	Abort *atomic.Bool
}

func (c *Clock) Start(ctx context.Context, cfg *ClockConfig) {
	c.Stop()
	c.targetMovetime = MaxMovetime
	c.targetDepth = MaxDepth
	c.targetNodes = MaxNodes
	c.start = time.Now()
	c.abort = cfg.Abort
	c.canceled.Store(false)

	switch {
	case cfg.Movetime != 0:
		c.mode = ClockModeMovetime
		c.targetMovetime = cfg.Movetime
		if c.targetMovetime < minMovetime {
			c.targetMovetime = minMovetime
		}
		if c.targetMovetime > MaxMovetime {
			c.targetMovetime = MaxMovetime
		}
	case cfg.Depth != 0:
		c.mode = ClockModeDepth
		c.targetDepth = cfg.Depth
		if c.targetDepth > MaxDepth {
			c.targetDepth = MaxDepth
		}
	case cfg.Nodes != 0:
		c.mode = ClockModeNodes
		c.targetNodes = cfg.Nodes
	default:
		c.mode = ClockModeInfinite
	}

	stopCh := make(chan struct{})
	c.stopCh = stopCh
	go func() {
		select {
		case <-ctx.Done():
			c.canceled.Store(true)
		case <-stopCh:
		}
	}()
}

func (c *Clock) Stop() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

func (c *Clock) Mode() ClockMode {
	return c.mode
}

func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Poll reports whether a running iteration has to be abandoned. It is
// meant to be called every few thousand nodes.
func (c *Clock) Poll() bool {
	if c.canceled.Load() || (c.abort != nil && c.abort.Load()) {
		return true
	}
	return c.mode == ClockModeMovetime && c.Elapsed() > movetimeAbortRatio*c.targetMovetime
}

func (c *Clock) DoneByMovetime() bool {
	return c.mode == ClockModeMovetime && c.Elapsed() > c.targetMovetime/movetimeIterationRatio
}

func (c *Clock) DoneByDepth(depth int) bool {
	return c.mode == ClockModeDepth && depth >= c.targetDepth
}

func (c *Clock) DoneByNodes(nodes uint64) bool {
	return c.mode == ClockModeNodes && nodes > c.targetNodes
}
