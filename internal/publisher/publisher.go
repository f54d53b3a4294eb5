// Package publisher makes the per-package publish decision: skip when the
// registry already has the version, otherwise acquire credentials, run the
// external publish action and propagate any failure unchanged. Nothing here
// retries; a failed publish aborts the whole run and reruns rely on the
// skip path being safe.
package publisher

import (
	"context"
	"fmt"

	"github.com/vk/shipwave/internal/catalog"
	"github.com/vk/shipwave/internal/credentials"
	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/registry"
)

// Runner performs the actual publish action for one package.
type Runner interface {
	Run(ctx context.Context, pkg *catalog.Package, tag string, extraEnv map[string]string) error
}

// Publisher holds the collaborators and run-wide settings for publish
// decisions. It is safe for concurrent use as long as its Checker and
// Runner are.
type Publisher struct {
	Checker     registry.Checker
	Runner      Runner
	RegistryURL string
	Token       string
	Tag         string
	ExtraEnv    map[string]string
}

// Publish decides and, if needed, performs the publish for one package.
// Returning nil means the package may be marked published, whether or not a
// network publish actually happened.
func (p *Publisher) Publish(ctx context.Context, pkg *catalog.Package) error {
	logger := ctxlog.FromContext(ctx).With("package", pkg.Name, "version", pkg.Version)

	published, err := p.Checker.Published(ctx, pkg.Name, pkg.Version)
	if err != nil {
		return err
	}
	if published {
		logger.Info("⏭️ Version already in registry, skipping publish.")
		return nil
	}

	logger.Info("▶️ Publishing package.", "tag", p.Tag)
	cred, err := credentials.Acquire(pkg.Dir, p.RegistryURL, p.Token)
	if err != nil {
		return fmt.Errorf("acquiring credentials for %s: %w", pkg.Name, err)
	}
	defer func() {
		if relErr := cred.Release(); relErr != nil {
			logger.Warn("Failed to remove credential file.", "error", relErr)
		}
	}()

	if err := p.Runner.Run(ctx, pkg, p.Tag, p.ExtraEnv); err != nil {
		return err
	}

	logger.Info("✅ Package published.")
	return nil
}
