// Package schema declares the HCL structure of a release.hcl file. It is
// decode-only; translation into the runtime model lives in internal/config.
package schema

import "github.com/hashicorp/hcl/v2"

// Registry configures where publish status is checked and where the auth
// token comes from.
type Registry struct {
	URL      string `hcl:"url"`
	TokenEnv string `hcl:"token_env,optional"`
}

// Tags names the dist-tags used for nightly and stable runs.
type Tags struct {
	Nightly string `hcl:"nightly,optional"`
	Stable  string `hcl:"stable,optional"`
}

// Publish configures the external publish action.
type Publish struct {
	Command []string       `hcl:"command,optional"`
	Tags    *Tags          `hcl:"tags,block"`
	Env     hcl.Expression `hcl:"env,optional"`
}

// ReleaseConfig is the top level of a release.hcl file. Every block and
// attribute is optional; defaults are applied during translation.
type ReleaseConfig struct {
	Workers  int       `hcl:"workers,optional"`
	Registry *Registry `hcl:"registry,block"`
	Publish  *Publish  `hcl:"publish,block"`
}
