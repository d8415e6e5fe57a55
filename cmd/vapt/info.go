package main

import (
	"fmt"
	"os"

	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/spf13/cobra"
)

var (
	infoVersion string
	infoRaw     bool
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show the metadata of a package version",
	Long: `Show the metadata apt-cache holds for one version of a package.
Without --version the candidate version is shown, or the installed one
when there is no candidate.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoVersion, "version", "", "Package version (default: candidate)")
	infoCmd.Flags().BoolVar(&infoRaw, "raw", false, "Print the stanza as apt-cache shows it")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	tool := newTool()
	name := args[0]

	version := infoVersion
	if version == "" {
		policy, err := tool.Policy(ctx, name)
		if err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		version = policy.Candidate
		if version == "" {
			version = policy.Installed
		}
		if version == "" {
			logger.Error("package not found: %s", name)
			os.Exit(1)
		}
	}

	if infoRaw {
		text := tool.ShowPackageRaw(ctx, name, version)
		if text == "" {
			logger.Error("no information for %s=%s", name, version)
			os.Exit(1)
		}
		fmt.Println(text)
		return
	}

	fields := tool.ShowPackage(ctx, name, version)
	if len(fields) == 0 {
		logger.Error("no information for %s=%s", name, version)
		os.Exit(1)
	}
	for _, f := range fields {
		fmt.Printf("%s %s\n", output.Sprint(output.Info, f.Field+":"), f.Value)
	}
}
