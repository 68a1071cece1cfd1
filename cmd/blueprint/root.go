package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	blueprintlog "github.com/davetashner/blueprint/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for blueprint.
var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Turn a Home Assistant integration blueprint checkout into your project",
	Long: `Blueprint initializes a fresh copy of the Home Assistant integration
blueprint: it replaces the template's placeholder domain, title, class
namespace, repository and author throughout the tree, renames the
integration directory, installs the project README and removes its own
scaffolding. It refuses to touch a tree that has already been customized.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		blueprintlog.Setup(os.Stderr, verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
