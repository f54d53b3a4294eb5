package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/shipwave/internal/catalog"
	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/dag"
	"github.com/vk/shipwave/internal/executor"
	"github.com/vk/shipwave/internal/publisher"
)

// Run executes the publish run: load the catalog, build the graph, then
// either print the wave plan or dispatch every wave. Any error aborts the
// run; packages published by earlier waves stay published.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cat, err := catalog.Load(ctx, a.cfg.RootPath)
	if err != nil {
		return fmt.Errorf("failed to load package catalog: %w", err)
	}
	a.logger.Info("Catalog loaded.", "package_count", len(cat))

	graph := dag.Build(ctx, cat)
	if graph.Len() == 0 {
		a.logger.Warn("No publishable packages found, nothing to do.")
		return nil
	}

	if a.cfg.Plan {
		return a.printPlan(graph)
	}

	tag := a.model.StableTag
	if a.cfg.Nightly {
		tag = a.model.NightlyTag
	}

	pub := &publisher.Publisher{
		Checker:     a.checker,
		Runner:      a.runner,
		RegistryURL: a.model.RegistryURL,
		Token:       os.Getenv(a.model.TokenEnv),
		Tag:         tag,
		ExtraEnv:    a.model.ExtraEnv,
	}

	a.logger.Info("🚀 Starting dependency-ordered publish.", "packages", graph.Len(), "tag", tag, "workers", a.model.Workers)
	exec := executor.New(graph, cat, pub, a.model.Workers)
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("publish run failed: %w", err)
	}
	a.logger.Info("🏁 All packages published.", "count", exec.Published())

	return nil
}

// printPlan writes the computed wave plan without publishing anything.
// A cyclic graph still fails so operators can use --plan as a dry check.
func (a *App) printPlan(graph *dag.Graph) error {
	waves, err := dag.Waves(graph)
	if err != nil {
		return err
	}
	for i, wave := range waves {
		fmt.Fprintf(a.outW, "wave %d: %s\n", i, strings.Join(wave, ", "))
	}
	return nil
}
