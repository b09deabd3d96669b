package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/config"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/inmemorystore"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/report"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/runstore"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/session"
)

// ErrNoPlatforms is returned when neither the configuration nor the
// descriptors name a platform.
var ErrNoPlatforms = errors.New("no platform to resolve")

// Run loads the descriptors, resolves every platform in parallel and writes
// the reports in sorted platform order. Failures of all platforms are
// reported together.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App: Run started.")

	cfg, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load descriptors: %w", err)
	}

	platforms := slices.Clone(a.config.Platforms)
	if len(platforms) == 0 {
		platforms = cfg.Platforms()
	}
	if len(platforms) == 0 {
		return ErrNoPlatforms
	}
	a.logger.Info("App: Resolving platforms.", "platforms", platforms, "package_count", len(cfg.Descriptors))

	runs := inmemorystore.New()
	for _, platform := range platforms {
		if err := runs.SetStatus(ctx, platform, runstore.StatusPending); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for _, platform := range platforms {
		g.Go(func() error {
			return a.runPlatform(gctx, runs, cfg, platform)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	outcomes, err := collect(ctx, runs)
	if err != nil {
		return err
	}
	if err := a.writeReports(outcomes); err != nil {
		return err
	}
	a.logger.Debug("App: Run finished.")
	return nil
}

// platformOutcome pairs a platform with its resolved outcome.
type platformOutcome struct {
	platform string
	runstore.Outcome
}

// runPlatform records the result of one platform in runs. Only store
// failures are returned; resolution failures are recorded.
func (a *App) runPlatform(ctx context.Context, runs runstore.Store, cfg *config.Model, platform string) error {
	if err := runs.SetStatus(ctx, platform, runstore.StatusRunning); err != nil {
		return err
	}
	outcome, err := a.resolvePlatform(ctx, cfg, platform)
	if err != nil {
		if storeErr := runs.SetError(ctx, platform, fmt.Errorf("platform '%s': %w", platform, err)); storeErr != nil {
			return storeErr
		}
		return runs.SetStatus(ctx, platform, runstore.StatusFailed)
	}
	if err := runs.SetOutcome(ctx, platform, outcome); err != nil {
		return err
	}
	return runs.SetStatus(ctx, platform, runstore.StatusResolved)
}

// collect returns the outcomes in sorted platform order, or the combined
// error of every failed platform.
func collect(ctx context.Context, runs runstore.Store) ([]platformOutcome, error) {
	platforms, err := runs.Platforms(ctx)
	if err != nil {
		return nil, err
	}
	var outcomes []platformOutcome
	var errs error
	for _, platform := range platforms {
		runErr, err := runs.GetError(ctx, platform)
		if err != nil {
			return nil, err
		}
		if runErr != nil {
			errs = multierr.Append(errs, runErr)
			continue
		}
		outcome, ok, err := runs.GetOutcome(ctx, platform)
		if err != nil {
			return nil, err
		}
		if !ok {
			status, _ := runs.GetStatus(ctx, platform)
			errs = multierr.Append(errs, fmt.Errorf("platform '%s' has no result, status %s", platform, status))
			continue
		}
		outcomes = append(outcomes, platformOutcome{platform: platform, Outcome: outcome})
	}
	if errs != nil {
		return nil, errs
	}
	return outcomes, nil
}

func (a *App) resolvePlatform(ctx context.Context, cfg *config.Model, platform string) (runstore.Outcome, error) {
	packages := cfg.Packages(platform)
	narrowed := len(a.config.Packages) > 0
	if narrowed {
		kept, unknown := config.Narrow(packages, a.config.Packages)
		if len(unknown) > 0 {
			return runstore.Outcome{}, unknownPackagesError(packages, unknown)
		}
		packages = kept
	}

	sess, err := a.sessions.NewSession(ctx, session.Request{
		Platform:            platform,
		Packages:            packages,
		ExternalConstraints: a.config.ExternalConstraints,
		Narrowed:            narrowed,
	})
	if err != nil {
		return runstore.Outcome{}, err
	}
	defer sess.Close(ctx)

	if _, err := sess.BuildOrder(ctx); err != nil {
		return runstore.Outcome{}, err
	}
	result, err := sess.Finalize(ctx)
	if err != nil {
		return runstore.Outcome{}, err
	}
	ctxlog.FromContext(ctx).Info("App: Platform resolved.", "platform", platform, "run_id", sess.Run().ID, "package_count", len(result.Packages()))
	return runstore.Outcome{RunID: sess.Run().ID, Result: result}, nil
}

func unknownPackagesError(packages []*model.RawPackage, unknown []string) error {
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
	}
	var errs error
	for _, name := range unknown {
		msg := fmt.Sprintf("requested package '%s' not found", name)
		if candidates := buildorder.Suggest(name, names); len(candidates) > 0 {
			msg += fmt.Sprintf(", did you mean '%s'", strings.Join(candidates, ", "))
		}
		errs = multierr.Append(errs, errors.New(msg))
	}
	return errs
}

func (a *App) writeReports(outcomes []platformOutcome) error {
	docs := make([]report.Document, 0, len(outcomes))
	for _, o := range outcomes {
		doc := report.Build(o.platform, o.Result)
		doc.RunID = o.RunID
		docs = append(docs, doc)
	}

	switch a.config.Format {
	case "json":
		return report.WriteJSON(a.outW, docs...)
	case "dot":
		for _, o := range outcomes {
			if err := report.WriteDOT(a.outW, o.platform, o.Result); err != nil {
				return err
			}
		}
		return nil
	default:
		return report.WriteYAML(a.outW, docs...)
	}
}
