package main

import (
	"fmt"
	"os"

	"github.com/obentoo/vapt/internal/common/config"
	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <section/key> <value>",
	Short: "Change one setting and save the file",
	Long: `Change one setting and save the file.

Keys:
  editor/installs_autocompletion       true|false
  editor/upgrades_selected_by_default  true|false
  editor/localization_file             path to a language file
  apt_install/fix_missing              true|false
  apt_install/fix_broken               true|false
  apt_install/fix_policy               true|false`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
	Run: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := loadStore()
		if err != nil {
			logger.Error("loading config: %v", err)
			os.Exit(1)
		}
		fmt.Println(store.Path())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	store, err := loadStore()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	cfg := store.Snapshot()
	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		fmt.Printf("%-36s %s\n", key, output.Sprint(output.Info, value))
	}
}

func runConfigSet(cmd *cobra.Command, args []string) {
	store, err := loadStore()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	if err := store.Set(args[0], args[1]); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	output.PrintSuccess("%s saved to %s", args[0], store.Path())
}
