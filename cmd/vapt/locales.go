package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/obentoo/vapt/internal/locale"
	"github.com/spf13/cobra"
)

var localesMissing bool

var localesCmd = &cobra.Command{
	Use:   "locales [locale]",
	Short: "List the available interface languages",
	Long: `List the language files in the locales directory, optionally only
those declaring the given locale (for example es_AR). Set one with:

  vapt config set editor/localization_file <path>`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLocales,
}

func init() {
	localesCmd.Flags().BoolVar(&localesMissing, "missing", false, "Also list untranslated keys")
	rootCmd.AddCommand(localesCmd)
}

func runLocales(cmd *cobra.Command, args []string) {
	dir := locale.Dir(localesDir)

	fallback, err := locale.LoadFile(filepath.Join(dir, locale.FallbackFile))
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	docs, err := locale.Discover(dir)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	active := ""
	if store, err := loadStore(); err == nil {
		active = store.Snapshot().Editor.LocalizationFile
		if active != "" && !filepath.IsAbs(active) {
			active = filepath.Join(dir, active)
		}
	}

	shown := 0
	for _, doc := range docs {
		if len(args) == 1 && !doc.Matches(args[0]) {
			continue
		}
		shown++

		marker := " "
		if doc.Path == active || (active == "" && doc.Path == fallback.Path) {
			marker = output.Sprint(output.Success, "*")
		}
		fmt.Printf("%s %-16s %-28s %s\n", marker,
			output.Sprint(output.Header, doc.DisplayName),
			strings.Join(doc.Locales, ","),
			output.Sprint(output.Dim, doc.Path))

		if localesMissing {
			for _, key := range locale.NewCatalog(fallback, doc).Missing() {
				fmt.Printf("    %s %s\n", output.Sprint(output.Warning, "missing"), key)
			}
		}
	}

	if shown == 0 {
		logger.Warn("no language file in %s matches", dir)
		os.Exit(1)
	}
}
