// Package config loads the optional release.hcl file and translates it into
// the format-agnostic model the rest of the app consumes. A missing file is
// not an error; every setting has a default.
package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/schema"
)

// Model is the resolved run configuration.
type Model struct {
	RegistryURL    string
	TokenEnv       string
	PublishCommand []string
	NightlyTag     string
	StableTag      string
	ExtraEnv       map[string]string
	Workers        int
}

// Default returns the model used when no release.hcl is given.
func Default() *Model {
	return &Model{
		RegistryURL:    "https://registry.npmjs.org",
		TokenEnv:       "NPM_TOKEN",
		PublishCommand: []string{"npm", "publish"},
		NightlyTag:     "next",
		StableTag:      "latest",
		Workers:        4,
	}
}

// Load parses the release.hcl at path and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := Default()
	if path == "" {
		logger.Debug("No release config given, using defaults.")
		return model, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", path, diags.Error())
	}

	var raw schema.ReleaseConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", path, diags.Error())
	}

	if raw.Workers > 0 {
		model.Workers = raw.Workers
	}
	if raw.Registry != nil {
		if raw.Registry.URL != "" {
			model.RegistryURL = raw.Registry.URL
		}
		if raw.Registry.TokenEnv != "" {
			model.TokenEnv = raw.Registry.TokenEnv
		}
	}
	if raw.Publish != nil {
		if err := applyPublish(model, raw.Publish); err != nil {
			return nil, fmt.Errorf("invalid publish block in %s: %w", path, err)
		}
	}

	logger.Debug("Release config loaded.", "path", path, "registry", model.RegistryURL, "workers", model.Workers)
	return model, nil
}

func applyPublish(model *Model, p *schema.Publish) error {
	if len(p.Command) > 0 {
		model.PublishCommand = p.Command
	}
	if p.Tags != nil {
		if p.Tags.Nightly != "" {
			model.NightlyTag = p.Tags.Nightly
		}
		if p.Tags.Stable != "" {
			model.StableTag = p.Tags.Stable
		}
	}
	if p.Env != nil {
		env, err := decodeEnv(p.Env)
		if err != nil {
			return err
		}
		model.ExtraEnv = env
	}
	return nil
}

// decodeEnv evaluates the env attribute into a flat string map. Only literal
// string values are accepted; the publish subprocess environment is no place
// for computed types.
func decodeEnv(expr hcl.Expression) (map[string]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating env: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("env must be an object of strings, got %s", val.Type().FriendlyName())
	}

	pairs := val.AsValueMap()
	env := make(map[string]string, len(pairs))
	for key, v := range pairs {
		if v.Type() != cty.String || v.IsNull() {
			return nil, fmt.Errorf("env value for %q must be a string", key)
		}
		env[key] = v.AsString()
	}
	return env, nil
}
