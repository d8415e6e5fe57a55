package main

import (
	"fmt"

	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list <upgradable|installed>",
	Short:     "List upgradable or installed packages",
	ValidArgs: []string{"upgradable", "installed"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run:       runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	tool := newTool()
	var entries []apt.ListEntry
	switch args[0] {
	case "upgradable":
		entries = tool.ListUpgradable(ctx)
	case "installed":
		entries = tool.ListInstalled(ctx)
	}

	if len(entries) == 0 {
		logger.Info("no %s packages", args[0])
		return
	}
	for _, e := range entries {
		fmt.Println(formatEntry(e))
	}
}

// formatEntry renders one list line as "name:arch  installed → candidate"
func formatEntry(e apt.ListEntry) string {
	return fmt.Sprintf("%s  %s", output.FormatPackage(e.Name, e.Architecture),
		output.FormatVersionChange(e.InstalledVersion, e.CandidateVersion))
}
