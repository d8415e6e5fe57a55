package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/obentoo/vapt/internal/operation"
	"github.com/obentoo/vapt/internal/selection"
	"github.com/spf13/cobra"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrNotUpgradable   = errors.New("package has no upgrade")
	ErrNotInstalled    = errors.New("package is not installed")
)

// allPackages selects every row of the upgrade or remove list
const allPackages = "all"

var (
	applyInstall []string
	applyUpgrade []string
	applyRemove  []string
	applyDryRun  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Install, upgrade and remove packages",
	Long: `Build a plan from the given packages and run it with apt-get.

Packages are given as name or name:arch. Removal runs first and must finish
before installs and upgrades start; they share one apt-get install call that
uses the repair flags of the configuration.

Examples:
  vapt apply --install htop,curl --remove nano
  vapt apply --upgrade all --dry-run`,
	Args: cobra.NoArgs,
	Run:  runApply,
}

func init() {
	applyCmd.Flags().StringSliceVarP(&applyInstall, "install", "i", nil, "Packages to install")
	applyCmd.Flags().StringSliceVarP(&applyUpgrade, "upgrade", "u", nil, "Packages to upgrade, or \"all\"")
	applyCmd.Flags().StringSliceVarP(&applyRemove, "remove", "r", nil, "Packages to remove")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "Print the commands without running them")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
	store, err := loadStore()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	ctx, stop := signalContext()
	defer stop()

	tool := newTool()
	plan, err := resolvePlan(ctx, tool, applyInstall, applyUpgrade, applyRemove)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	opts := operation.OptionsFromConfig(store.Snapshot())

	if applyDryRun {
		printPlan(plan, opts)
		return
	}

	ex := operation.NewExecutor(tool)
	done, err := runMutations(ctx, ex, func(mctx context.Context) (<-chan operation.Event, error) {
		return ex.Execute(mctx, plan, opts)
	})
	if errors.Is(err, operation.ErrNothingToDo) {
		output.PrintWarning("Nothing to do.")
		return
	}
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if done.Err != nil {
		output.PrintError("%v", done.Err)
		os.Exit(1)
	}
	output.PrintSuccess("Done.")
}

// resolvePlan turns package arguments into a plan, reading the same sources
// the interactive lists are filled from
func resolvePlan(ctx context.Context, tool apt.Executor, install, upgrade, remove []string) (operation.Plan, error) {
	installs := selection.New()
	for _, spec := range install {
		name, arch := splitSpec(spec)
		policy, err := tool.Policy(ctx, name)
		if err != nil {
			return operation.Plan{}, err
		}

		added := 0
		for _, row := range selection.RowsFromPolicy(name, policy, true) {
			if arch == "" || row.Architecture == arch {
				installs.AddOrUpdate(row)
				added++
			}
		}
		if added == 0 {
			return operation.Plan{}, fmt.Errorf("%w: %s", ErrPackageNotFound, spec)
		}
	}

	upgrades := selection.New()
	if len(upgrade) > 0 {
		upgrades.RefreshFrom(tool.ListUpgradable(ctx), false)
		if err := selectRows(upgrades, upgrade, ErrNotUpgradable); err != nil {
			return operation.Plan{}, err
		}
	}

	removes := selection.New()
	if len(remove) > 0 {
		removes.RefreshFrom(tool.ListInstalled(ctx), false)
		if err := selectRows(removes, remove, ErrNotInstalled); err != nil {
			return operation.Plan{}, err
		}
	}

	return operation.BuildPlan(installs.Rows(), upgrades.Rows(), removes.Rows()), nil
}

// selectRows selects the rows matching every argument, or all rows for "all"
func selectRows(list *selection.List, specs []string, notFound error) error {
	for _, spec := range specs {
		if spec == allPackages {
			list.SetAll(true)
			continue
		}

		name, arch := splitSpec(spec)
		matched := false
		for i, row := range list.Rows() {
			if row.Name != name || (arch != "" && row.Architecture != arch) {
				continue
			}
			matched = true
			if !row.Selected {
				if _, err := list.Toggle(i); err != nil {
					return err
				}
			}
		}
		if !matched {
			return fmt.Errorf("%w: %s", notFound, spec)
		}
	}
	return nil
}

// splitSpec splits "name:arch" into its parts
func splitSpec(spec string) (string, string) {
	name, arch, _ := strings.Cut(strings.TrimSpace(spec), ":")
	return name, arch
}

func printPlan(plan operation.Plan, opts apt.InstallOptions) {
	mutations := plan.Mutations(opts)
	if len(mutations) == 0 {
		output.PrintWarning("Nothing to do.")
		return
	}

	for _, spec := range plan.Removes {
		fmt.Printf("%s %s\n", output.FormatOperation("remove"), spec)
	}
	for _, spec := range plan.Installs {
		fmt.Printf("%s %s\n", output.FormatOperation("install"), spec)
	}
	for _, spec := range plan.Upgrades {
		fmt.Printf("%s %s\n", output.FormatOperation("upgrade"), spec)
	}

	commands := make([]string, 0, len(mutations))
	for _, m := range mutations {
		commands = append(commands, m.CommandLine())
	}
	output.Box("dry run", strings.Join(commands, "\n"))
}
