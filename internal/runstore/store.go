// Package runstore defines the interface for recording the state of the
// per-platform resolution runs of one application run. Runs execute
// concurrently, so implementations must be safe for concurrent use.
package runstore

import (
	"context"
	"fmt"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
)

// Status is the state of one platform run.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusResolved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of a resolved platform.
type Outcome struct {
	RunID  string
	Result *resolve.Result
}

// Store tracks the status, outcome and error of every platform run.
type Store interface {
	// SetStatus updates the status of a platform. The first call registers
	// the platform.
	SetStatus(ctx context.Context, platform string, status Status) error
	// GetStatus returns StatusPending for platforms without a status.
	GetStatus(ctx context.Context, platform string) (Status, error)

	SetOutcome(ctx context.Context, platform string, outcome Outcome) error
	// GetOutcome returns false if the platform has not been resolved.
	GetOutcome(ctx context.Context, platform string) (Outcome, bool, error)

	SetError(ctx context.Context, platform string, runErr error) error
	// GetError returns nil if the platform did not fail.
	GetError(ctx context.Context, platform string) (error, error)

	// Platforms returns every registered platform in sorted order.
	Platforms(ctx context.Context) ([]string, error)
}
