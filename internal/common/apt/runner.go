package apt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/obentoo/vapt/internal/common/logger"
)

const (
	AptBinary      = "apt"
	AptCacheBinary = "apt-cache"
	AptGetBinary   = "apt-get"
	DpkgBinary     = "dpkg"
)

var (
	ErrCommand      = errors.New("package tool command failed")
	ErrEmptyPackage = errors.New("package name is empty")
)

// CommandError carries the stderr of a failed package tool invocation
type CommandError struct {
	Command string
	Stderr  string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return e.Command + " failed"
	}
	return e.Command + ": " + e.Stderr
}

// CommandFunc builds the command for a tool invocation.
// Tests substitute it to replay recorded output.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner executes apt, apt-cache, apt-get and dpkg
type Runner struct {
	command CommandFunc
}

// NewRunner creates a Runner that executes the system binaries
func NewRunner() *Runner {
	return NewRunnerWithCommand(exec.CommandContext)
}

// NewRunnerWithCommand creates a Runner that builds commands with fn
func NewRunnerWithCommand(fn CommandFunc) *Runner {
	return &Runner{
		command: fn,
	}
}

// Environment returns the environment used for every invocation:
// non-interactive debconf and the C locale so output stays parseable
func Environment() []string {
	env := os.Environ()
	return append(env,
		"DEBIAN_FRONTEND=noninteractive",
		"LC_ALL=C",
		"LANG=C",
	)
}

// runCommand executes a tool and returns stdout, stderr, and any error
func (r *Runner) runCommand(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := r.command(ctx, name, args...)
	cmd.Env = Environment()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	logger.Debug("running %s %s", name, strings.Join(args, " "))

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		err = errors.Join(ErrCommand, &CommandError{
			Command: name + " " + strings.Join(args, " "),
			Stderr:  strings.TrimSpace(stderr),
		}, err)
	}

	return stdout, stderr, err
}

// query runs a read-only tool. Failures are logged and produce empty output.
func (r *Runner) query(ctx context.Context, name string, args ...string) string {
	stdout, _, err := r.runCommand(ctx, name, args...)
	if err != nil {
		logger.Debug("%v", err)
		return ""
	}
	return stdout
}

// LookupPackageNames lists names from apt-cache pkgnames and narrows them by
// the filter terms
func (r *Runner) LookupPackageNames(ctx context.Context, prefix string, filterTerms []string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	out := r.query(ctx, AptCacheBinary, "pkgnames", prefix)
	if strings.TrimSpace(out) == "" {
		return []string{}
	}

	return FilterNames(strings.Split(out, "\n"), filterTerms)
}

// Policy runs apt-cache policy for a package
func (r *Runner) Policy(ctx context.Context, name string) (Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Policy{}, ErrEmptyPackage
	}

	out := r.query(ctx, AptCacheBinary, "policy", name)
	return ParsePolicyOutput(name, out), nil
}

// ListUpgradable runs apt list --upgradable
func (r *Runner) ListUpgradable(ctx context.Context) []ListEntry {
	return ParseUpgradableOutput(r.query(ctx, AptBinary, "list", "--upgradable"))
}

// ListInstalled runs apt list --installed
func (r *Runner) ListInstalled(ctx context.Context) []ListEntry {
	return ParseInstalledOutput(r.query(ctx, AptBinary, "list", "--installed"))
}

// ShowPackage runs apt-cache show and parses the stanzas of version
func (r *Runner) ShowPackage(ctx context.Context, name, version string) []InfoField {
	out := r.query(ctx, AptCacheBinary, "show", strings.ToLower(strings.TrimSpace(name)))
	if out == "" {
		return nil
	}
	return ParseShowOutput(out, strings.ToLower(strings.TrimSpace(version)))
}

// ShowPackageRaw runs apt-cache show and returns the stanzas of version
// separated by a blank line
func (r *Runner) ShowPackageRaw(ctx context.Context, name, version string) string {
	out := r.query(ctx, AptCacheBinary, "show", strings.ToLower(strings.TrimSpace(name)))
	if out == "" {
		return ""
	}
	return strings.Join(FilterStanzas(out, strings.ToLower(strings.TrimSpace(version))), "\n\n")
}

// Architecture runs dpkg --print-architecture
func (r *Runner) Architecture(ctx context.Context) string {
	arch := strings.TrimSpace(r.query(ctx, DpkgBinary, "--print-architecture"))
	if arch == "" {
		return "N/A"
	}
	return arch
}

// Start launches apt-get for the mutation with stdout and stderr merged
func (r *Runner) Start(ctx context.Context, m Mutation) (*Process, error) {
	if m.Kind != MutationUpdate && len(m.Specifiers) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Kind, ErrEmptyPackage)
	}

	cmd := r.command(ctx, AptGetBinary, m.Args()...)
	cmd.Env = Environment()

	logger.Debug("starting %s", m.CommandLine())

	return startProcess(cmd)
}

// Ensure Runner implements Executor interface
var _ Executor = (*Runner)(nil)
