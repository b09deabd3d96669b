// Package localsession provides the in-process implementation of the
// session.Session and session.SessionFactory interfaces. Each session owns an
// in-memory topology store and graph.
package localsession

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/graph"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/inmemorytopology"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/session"
)

var (
	tracer = otel.Tracer("localsession")
	meter  = otel.Meter("localsession")

	metricsOnce sync.Once
	metrics     = stageMetrics{duration: noop.Float64Histogram{}, failures: noop.Int64Counter{}}
)

// stageMetrics holds the instruments recorded per resolution stage.
type stageMetrics struct {
	duration metric.Float64Histogram
	failures metric.Int64Counter
}

// newStageMetrics creates the stage instruments on m. An instrument that
// can not be created is replaced by a no-op one and its error is returned.
func newStageMetrics(m metric.Meter) (stageMetrics, error) {
	var errs error
	duration, err := m.Float64Histogram("resolution_stage_duration_seconds",
		metric.WithDescription("Time spent in each resolution stage"),
		metric.WithUnit("s"),
	)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("stage duration histogram: %w", err))
		duration = noop.Float64Histogram{}
	}
	failures, err := m.Int64Counter("resolution_stage_failures_total",
		metric.WithDescription("Number of failed resolution stages"),
	)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("stage failure counter: %w", err))
		failures = noop.Int64Counter{}
	}
	return stageMetrics{duration: duration, failures: failures}, errs
}

func initMetrics(ctx context.Context) {
	metricsOnce.Do(func() {
		created, err := newStageMetrics(meter)
		if err != nil {
			ctxlog.FromContext(ctx).Debug("LocalSession: Metric instruments unavailable.", "error", err)
		}
		metrics = created
	})
}

// SessionFactory implements session.SessionFactory for local runs.
type SessionFactory struct{}

// NewSession creates and wires a new local session.
func (f *SessionFactory) NewSession(ctx context.Context, req session.Request) (session.Session, error) {
	initMetrics(ctx)

	run := session.NewRun(req.Platform)
	ctxlog.FromContext(ctx).Debug("LocalSession: Session created.", "run_id", run.ID, "platform", req.Platform, "package_count", len(req.Packages))

	return &Session{
		run:   run,
		req:   req,
		graph: graph.New(inmemorytopology.New()),
	}, nil
}

// Session implements session.Session for local runs.
type Session struct {
	run   *session.Run
	req   session.Request
	graph graph.Graph
	order *buildorder.Order
}

// Run returns the run context of this session.
func (s *Session) Run() *session.Run {
	return s.run
}

// BuildOrder resolves the global build order. It can run once.
func (s *Session) BuildOrder(ctx context.Context) (*buildorder.Order, error) {
	if err := s.run.Begin(session.StageCreated); err != nil {
		return nil, err
	}
	ctx = s.logContext(ctx)
	ctx, span := s.startSpan(ctx, "session.BuildOrder")
	defer span.End()
	start := time.Now()

	order, err := buildorder.Resolve(ctx, s.req.Packages, buildorder.Options{
		ExternalConstraints: s.req.ExternalConstraints,
		Narrowed:            s.req.Narrowed,
		Namer:               s.run,
		Graph:               s.graph,
	})
	s.finishStage(ctx, span, "build_order", start, err)
	s.run.Complete(session.StageOrdered, err)
	if err != nil {
		return nil, err
	}
	s.order = order
	return order, nil
}

// Finalize propagates attributes over the order computed by BuildOrder.
func (s *Session) Finalize(ctx context.Context) (*resolve.Result, error) {
	if err := s.run.Begin(session.StageOrdered); err != nil {
		return nil, err
	}
	ctx = s.logContext(ctx)
	ctx, span := s.startSpan(ctx, "session.Finalize")
	defer span.End()
	start := time.Now()

	result, err := resolve.Resolve(ctx, s.order)
	s.finishStage(ctx, span, "finalize", start, err)
	s.run.Complete(session.StageFinalized, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close uses the provided context for logging during cleanup.
func (s *Session) Close(ctx context.Context) error {
	ctxlog.FromContext(ctx).Debug("LocalSession: Session closed.", "run_id", s.run.ID, "stage", s.run.Stage().String())
	return nil
}

func (s *Session) logContext(ctx context.Context) context.Context {
	return ctxlog.With(ctx, "run_id", s.run.ID, "platform", s.run.Platform)
}

func (s *Session) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("session.run_id", s.run.ID),
			attribute.String("session.platform", s.run.Platform),
		),
	)
}

func (s *Session) finishStage(ctx context.Context, span trace.Span, stage string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("stage", stage), attribute.String("platform", s.run.Platform))
	metrics.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		metrics.failures.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		ctxlog.FromContext(ctx).Debug("LocalSession: Stage failed.", "stage", stage, "error", err)
		return
	}
	span.SetStatus(codes.Ok, "")
}
