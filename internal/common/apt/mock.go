package apt

import "context"

// MockExecutor implements Executor for testing.
// Each method can be configured with a custom function to control behavior.
type MockExecutor struct {
	LookupPackageNamesFunc func(ctx context.Context, prefix string, filterTerms []string) []string
	PolicyFunc             func(ctx context.Context, name string) (Policy, error)
	ListUpgradableFunc     func(ctx context.Context) []ListEntry
	ListInstalledFunc      func(ctx context.Context) []ListEntry
	ShowPackageFunc        func(ctx context.Context, name, version string) []InfoField
	ShowPackageRawFunc     func(ctx context.Context, name, version string) string
	StartFunc              func(ctx context.Context, m Mutation) (*Process, error)
	ArchitectureFunc       func(ctx context.Context) string
}

// LookupPackageNames lists matching package names
func (m *MockExecutor) LookupPackageNames(ctx context.Context, prefix string, filterTerms []string) []string {
	if m.LookupPackageNamesFunc != nil {
		return m.LookupPackageNamesFunc(ctx, prefix, filterTerms)
	}
	return []string{}
}

// Policy returns the package policy
func (m *MockExecutor) Policy(ctx context.Context, name string) (Policy, error) {
	if m.PolicyFunc != nil {
		return m.PolicyFunc(ctx, name)
	}
	return Policy{Name: name}, nil
}

// ListUpgradable returns the upgradable packages
func (m *MockExecutor) ListUpgradable(ctx context.Context) []ListEntry {
	if m.ListUpgradableFunc != nil {
		return m.ListUpgradableFunc(ctx)
	}
	return nil
}

// ListInstalled returns the installed packages
func (m *MockExecutor) ListInstalled(ctx context.Context) []ListEntry {
	if m.ListInstalledFunc != nil {
		return m.ListInstalledFunc(ctx)
	}
	return nil
}

// ShowPackage returns package fields
func (m *MockExecutor) ShowPackage(ctx context.Context, name, version string) []InfoField {
	if m.ShowPackageFunc != nil {
		return m.ShowPackageFunc(ctx, name, version)
	}
	return nil
}

// ShowPackageRaw returns raw package stanzas
func (m *MockExecutor) ShowPackageRaw(ctx context.Context, name, version string) string {
	if m.ShowPackageRawFunc != nil {
		return m.ShowPackageRawFunc(ctx, name, version)
	}
	return ""
}

// Start launches a mutation. Without StartFunc it replays no output and exits 0.
func (m *MockExecutor) Start(ctx context.Context, mut Mutation) (*Process, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, mut)
	}
	return NewFakeProcess(nil, 0), nil
}

// Architecture returns the native architecture
func (m *MockExecutor) Architecture(ctx context.Context) string {
	if m.ArchitectureFunc != nil {
		return m.ArchitectureFunc(ctx)
	}
	return "amd64"
}

// NewFakeProcess returns a Process that replays lines and then exits with
// exitCode. It is meant for tests of code consuming a Process.
func NewFakeProcess(lines []string, exitCode int) *Process {
	p := &Process{
		lines: make(chan string),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		for _, line := range lines {
			p.lines <- line
		}
		close(p.lines)
		p.exitCode = exitCode
	}()

	return p
}

// Ensure MockExecutor implements Executor interface
var _ Executor = (*MockExecutor)(nil)
