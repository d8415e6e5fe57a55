package main

import (
	"errors"
	"os"

	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/obentoo/vapt/internal/common/system"
	"github.com/obentoo/vapt/internal/common/version"
	"github.com/obentoo/vapt/internal/locale"
	"github.com/obentoo/vapt/internal/tui"
	"github.com/spf13/cobra"
)

func runInteractive(cmd *cobra.Command, args []string) {
	store, err := loadStore()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	dir := locale.Dir(localesDir)
	catalog, err := locale.Load(dir, store.Snapshot().Editor.LocalizationFile)
	if err != nil {
		var loadErr *locale.LoadError
		if errors.As(err, &loadErr) {
			logger.Error("fallback language %s unusable: %v", loadErr.Path, loadErr.Err)
		} else {
			logger.Error("loading languages: %v", err)
		}
		os.Exit(1)
	}

	if !output.IsTerminal() {
		logger.Error("the interactive interface needs a terminal; see 'vapt --help' for the command-line mode")
		os.Exit(1)
	}

	ctx, stop := signalContext()
	defer stop()

	opts := tui.Options{
		Apt:        newTool(),
		Store:      store,
		Catalog:    catalog,
		LocalesDir: dir,
		OSName:     system.OSName(),
		Version:    version.Short(),
	}
	if err := tui.Run(ctx, opts, noColor); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
