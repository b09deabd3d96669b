package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
)

// Stage is the progress of a run.
type Stage int

const (
	StageCreated Stage = iota
	StageOrdered
	StageFinalized
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageCreated:
		return "created"
	case StageOrdered:
		return "ordered"
	case StageFinalized:
		return "finalized"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Run is the context object of one resolution run. It is safe for
// concurrent use.
type Run struct {
	ID       string
	Platform string

	mu       sync.Mutex
	stage    Stage
	counters map[string]int
}

// NewRun creates a run with a fresh ID.
func NewRun(platform string) *Run {
	return &Run{
		ID:       uuid.NewString(),
		Platform: platform,
		counters: make(map[string]int),
	}
}

// SyntheticName returns base the first time it is asked for within this run
// and base_N for the N-th request after that.
func (r *Run) SyntheticName(base string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counters[base]++
	if count := r.counters[base]; count > 1 {
		return fmt.Sprintf("%s_%d", base, count)
	}
	return base
}

// Stage returns the current stage.
func (r *Run) Stage() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage
}

// Begin checks that the run is at the given stage. A failed run never
// continues.
func (r *Run) Begin(expected Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stage != expected {
		return fmt.Errorf("run %s is %s, expected %s: %w", r.ID, r.stage, expected, buildorder.ErrUsage)
	}
	return nil
}

// Complete moves the run to the next stage, or to StageFailed when err is
// not nil.
func (r *Run) Complete(next Stage, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.stage = StageFailed
		return
	}
	r.stage = next
}

var _ buildorder.Namer = (*Run)(nil)
