package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/shipwave/internal/catalog"
	"github.com/vk/shipwave/internal/ctxlog"
)

// PublishError wraps a failed publish subprocess together with its combined
// output, which is usually the only useful diagnostic npm leaves behind.
type PublishError struct {
	Pkg    string
	Output string
	Err    error
}

func (e *PublishError) Error() string {
	msg := fmt.Sprintf("publish action failed for %s: %v", e.Pkg, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *PublishError) Unwrap() error { return e.Err }

// ExecRunner runs the configured publish command as a subprocess in the
// package directory, with the dist-tag appended and the process environment
// extended by the configured extras.
type ExecRunner struct {
	// Command is the base publish command, e.g. ["npm", "publish"].
	Command []string
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, pkg *catalog.Package, tag string, extraEnv map[string]string) error {
	if len(r.Command) == 0 {
		return errors.New("publish command is not configured")
	}
	logger := ctxlog.FromContext(ctx).With("package", pkg.Name)

	args := append(append([]string{}, r.Command[1:]...), "--tag", tag)
	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Dir = pkg.Dir

	env := os.Environ()
	for key, value := range extraEnv {
		env = append(env, key+"="+value)
	}
	cmd.Env = env

	logger.Debug("Invoking publish command.", "command", r.Command[0], "args", args, "dir", pkg.Dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &PublishError{Pkg: pkg.Name, Output: string(out), Err: err}
	}

	logger.Debug("Publish command finished.", "output_bytes", len(out))
	return nil
}
