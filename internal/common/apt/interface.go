package apt

import "context"

// Executor defines the interface for package tool operations.
// This interface allows for mocking apt in tests.
type Executor interface {
	// LookupPackageNames lists package names starting with prefix that also
	// contain every filter term. Failures yield an empty result.
	LookupPackageNames(ctx context.Context, prefix string, filterTerms []string) []string

	// Policy returns the installed and candidate versions of a package and the
	// architectures it is published for
	Policy(ctx context.Context, name string) (Policy, error)

	// ListUpgradable returns the packages with a newer candidate version
	ListUpgradable(ctx context.Context) []ListEntry

	// ListInstalled returns the installed packages
	ListInstalled(ctx context.Context) []ListEntry

	// ShowPackage returns the metadata fields of one package version
	ShowPackage(ctx context.Context, name, version string) []InfoField

	// ShowPackageRaw returns the unparsed metadata stanzas of one package version
	ShowPackageRaw(ctx context.Context, name, version string) string

	// Start launches a mutation command and streams its output
	Start(ctx context.Context, m Mutation) (*Process, error)

	// Architecture returns the native dpkg architecture
	Architecture(ctx context.Context) string
}
