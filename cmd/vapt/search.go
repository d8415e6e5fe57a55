package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/complete"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <prefix> [term...]",
	Short: "List package names matching a query",
	Long: `List package names starting with the first word of the query and
containing every other word, ignoring case.

Example:
  vapt search lib curl`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	query := strings.Join(args, " ")
	prefix, terms := complete.SplitQuery(query)
	names := complete.Filter(query, newTool().LookupPackageNames(ctx, prefix, terms))

	if len(names) == 0 {
		logger.Warn("no package matches %q", query)
		os.Exit(1)
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
