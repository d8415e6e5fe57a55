package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy <package>",
	Short: "Show installed and candidate versions of a package",
	Args:  cobra.ExactArgs(1),
	Run:   runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	name := args[0]
	policy, err := newTool().Policy(ctx, name)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	if policy.Candidate == "" && !policy.IsInstalled() {
		logger.Error("package not found: %s", name)
		os.Exit(1)
	}

	installed := policy.Installed
	if installed == "" {
		installed = output.Sprint(output.Dim, "(none)")
	}
	candidate := policy.Candidate
	if candidate == "" {
		candidate = output.Sprint(output.Dim, "(none)")
	}

	fmt.Println(output.Sprint(output.Header, name))
	fmt.Printf("  Installed:     %s\n", installed)
	fmt.Printf("  Candidate:     %s\n", candidate)
	fmt.Printf("  Architectures: %s\n", strings.Join(policy.Architectures, ", "))
}
