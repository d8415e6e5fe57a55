package main

import (
	"context"
	"os"

	"github.com/obentoo/vapt/internal/common/output"
	"github.com/obentoo/vapt/internal/operation"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the package database",
	Args:  cobra.NoArgs,
	Run:   runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	ctx, stop := signalContext()
	defer stop()

	ex := operation.NewExecutor(newTool())
	done, _ := runMutations(ctx, ex, func(mctx context.Context) (<-chan operation.Event, error) {
		return ex.Update(mctx), nil
	})
	if done.Err != nil {
		output.PrintError("%v", done.Err)
		os.Exit(1)
	}
	output.PrintSuccess("Package database updated")
}
