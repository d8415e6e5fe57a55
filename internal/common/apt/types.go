package apt

import "strings"

// Policy is the parsed result of apt-cache policy for one package.
type Policy struct {
	Name          string
	Installed     string   // empty when not installed
	Candidate     string   // empty when no candidate exists
	Architectures []string // first-seen order, no duplicates
}

// IsInstalled reports whether any version of the package is installed
func (p Policy) IsInstalled() bool {
	return p.Installed != ""
}

// ListEntry is one package line of apt list output
type ListEntry struct {
	Name             string
	CandidateVersion string
	InstalledVersion string
	Architecture     string
}

// InfoField is a single "Field: value" pair of an apt-cache show stanza
type InfoField struct {
	Field string
	Value string
}

// MutationKind selects the apt-get subcommand of a Mutation
type MutationKind int

const (
	MutationRemove MutationKind = iota
	MutationInstall
	MutationUpdate
)

// String returns the apt-get subcommand for the kind
func (k MutationKind) String() string {
	switch k {
	case MutationRemove:
		return "remove"
	case MutationInstall:
		return "install"
	case MutationUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// InstallOptions holds the repair flags passed to apt-get install
type InstallOptions struct {
	FixMissing bool
	FixBroken  bool
	FixPolicy  bool
}

// Mutation describes one apt-get invocation that changes system state
type Mutation struct {
	Kind       MutationKind
	Specifiers []string
	Options    InstallOptions
}

// Args returns the apt-get argument list for the mutation.
// Install options only apply to MutationInstall.
func (m Mutation) Args() []string {
	args := []string{m.Kind.String(), "-y"}

	if m.Kind == MutationInstall {
		if m.Options.FixMissing {
			args = append(args, "--fix-missing")
		}
		if m.Options.FixBroken {
			args = append(args, "--fix-broken")
		}
		if m.Options.FixPolicy {
			args = append(args, "--fix-policy")
		}
	}

	if m.Kind != MutationUpdate {
		args = append(args, m.Specifiers...)
	}
	return args
}

// CommandLine renders the full command for display
func (m Mutation) CommandLine() string {
	return AptGetBinary + " " + strings.Join(m.Args(), " ")
}
