// Package session defines the interfaces for creating and driving one
// resolution run. A run resolves one package snapshot for one platform and
// owns every piece of mutable state involved, so concurrent runs never share
// anything.
package session

import (
	"context"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
)

// Request describes the input of one run.
type Request struct {
	Platform            string
	Packages            []*model.RawPackage
	ExternalConstraints model.ExternalConstraints
	// Narrowed marks a deliberately requested subset of packages.
	Narrowed bool
}

// SessionFactory creates a Session. Implementations decide which stores
// back the package graph.
type SessionFactory interface {
	NewSession(ctx context.Context, req Request) (Session, error)
}

// Session drives the stages of one run. BuildOrder must succeed before
// Finalize; any other sequence returns buildorder.ErrUsage.
type Session interface {
	Run() *Run
	BuildOrder(ctx context.Context) (*buildorder.Order, error)
	Finalize(ctx context.Context) (*resolve.Result, error)
	// Close releases any resources held by the session.
	Close(ctx context.Context) error
}
