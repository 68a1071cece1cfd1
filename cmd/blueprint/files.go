package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/customize"
	"github.com/davetashner/blueprint/internal/report"
)

// filesCount prints only the number of candidates.
var filesCount bool

// filesCmd lists the files a run would scan for placeholders.
var filesCmd = &cobra.Command{
	Use:   "files [path]",
	Short: "List the files that would be scanned for placeholders",
	Long: `Print every file init would scan, after .gitignore prunes, operational
prunes, negations and scaffolding exclusions are applied. Useful to check
that local data such as config/ or .venv/ is left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesCount, "count", false, "print only the number of files")
}

func runFiles(cmd *cobra.Command, args []string) error {
	root, err := resolveRepoPath(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return exitError(ExitConfig, "blueprint: %v", err)
	}

	candidates, err := customize.Select(root, cfg, selfExclusions(root))
	if err != nil {
		return exitError(ExitFailure, "blueprint: %v", err)
	}
	if filesCount {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), len(candidates))
		return nil
	}
	return report.Files(cmd.OutOrStdout(), candidates)
}
