package main

import (
	"github.com/spf13/cobra"

	"github.com/davetashner/blueprint/internal/config"
)

// configCmd prints the effective template configuration.
var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Print the effective template configuration",
	Long: `Print the template tokens and layout in effect for the tree: the built-in
defaults merged with .blueprint.yaml when present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRepoPath(args)
		if err != nil {
			return err
		}
		cfg, err := config.Load(root)
		if err != nil {
			return exitError(ExitConfig, "blueprint: %v", err)
		}
		if err := config.Write(cmd.OutOrStdout(), cfg); err != nil {
			return exitError(ExitFailure, "blueprint: %v", err)
		}
		return nil
	},
}
