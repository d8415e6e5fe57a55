package operation

import (
	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/selection"
)

// Plan holds the package specifiers of one execution, derived from the
// selected rows of the three lists
type Plan struct {
	Removes  []string
	Installs []string
	Upgrades []string
}

// Canonicalize builds a package specifier name[:arch][=version], omitting
// empty parts
func Canonicalize(name, version, arch string) string {
	spec := name
	if arch != "" {
		spec += ":" + arch
	}
	if version != "" {
		spec += "=" + version
	}
	return spec
}

// BuildPlan canonicalizes the selected rows of each list.
// Install and upgrade rows pin the candidate version; remove rows name the
// package and architecture only.
func BuildPlan(install, upgrade, remove []selection.Row) Plan {
	plan := Plan{
		Removes:  []string{},
		Installs: []string{},
		Upgrades: []string{},
	}

	for _, r := range remove {
		if r.Selected {
			plan.Removes = append(plan.Removes, Canonicalize(r.Name, "", r.Architecture))
		}
	}
	for _, r := range install {
		if r.Selected {
			plan.Installs = append(plan.Installs, Canonicalize(r.Name, r.CandidateVersion, r.Architecture))
		}
	}
	for _, r := range upgrade {
		if r.Selected {
			plan.Upgrades = append(plan.Upgrades, Canonicalize(r.Name, r.CandidateVersion, r.Architecture))
		}
	}

	return plan
}

// IsEmpty reports whether the plan has nothing to run
func (p Plan) IsEmpty() bool {
	return len(p.Removes) == 0 && len(p.Installs) == 0 && len(p.Upgrades) == 0
}

// Mutations returns the commands that carry out the plan, in execution order:
// removal first, then one install covering installs and upgrades
func (p Plan) Mutations(opts apt.InstallOptions) []apt.Mutation {
	var mutations []apt.Mutation

	if len(p.Removes) > 0 {
		mutations = append(mutations, apt.Mutation{
			Kind:       apt.MutationRemove,
			Specifiers: append([]string(nil), p.Removes...),
		})
	}

	if len(p.Installs)+len(p.Upgrades) > 0 {
		specs := make([]string, 0, len(p.Installs)+len(p.Upgrades))
		specs = append(specs, p.Installs...)
		specs = append(specs, p.Upgrades...)
		mutations = append(mutations, apt.Mutation{
			Kind:       apt.MutationInstall,
			Specifiers: specs,
			Options:    opts,
		})
	}

	return mutations
}
