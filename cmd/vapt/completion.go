package main

import (
	"context"
	"os"

	"github.com/obentoo/vapt/internal/complete"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for vapt.

Package arguments complete from the apt cache.

Bash:
  $ source <(vapt completion bash)
  # To load completions for each session, execute once:
  $ vapt completion bash > /etc/bash_completion.d/vapt

Zsh:
  $ vapt completion zsh > "${fpath[1]}/_vapt"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vapt completion fish > ~/.config/fish/completions/vapt.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, cmd := range []*cobra.Command{infoCmd, policyCmd} {
		cmd.ValidArgsFunction = completeFirstPackage
	}
	for _, flag := range []string{"install", "upgrade", "remove"} {
		applyCmd.RegisterFlagCompletionFunc(flag, completePackage)
	}
}

// completePackage completes a package name from the apt cache
func completePackage(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if toComplete == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	prefix, terms := complete.SplitQuery(toComplete)
	return newTool().LookupPackageNames(context.Background(), prefix, terms), cobra.ShellCompDirectiveNoFileComp
}

func completeFirstPackage(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completePackage(cmd, args, toComplete)
}
