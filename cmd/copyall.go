package cmd

import (
	"fmt"

	"colophon/pkg/annotate"
	"colophon/pkg/host"
	"colophon/pkg/logging"

	"github.com/spf13/cobra"
)

func newCopyAllCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-all PATH...",
		Short: "Concatenate files into the clipboard, each under a header comment",
		Long: `Concatenate the given files into one clipboard payload. Directories are
walked and doublestar globs ('src/**/*.go') are expanded. Files named
directly count as visible editors; everything found by walking or globbing
is an open document. Which set is used follows documentSet.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ws, err := root.newWorkspace(cmd)
			if err != nil {
				return fmt.Errorf("failed to set up workspace: %w", err)
			}
			if err := openEntries(ws, args); err != nil {
				return err
			}

			if _, err := annotate.New(ws, logging.Logger).CopyAllOpenFiles(cfg); err != nil {
				return fmt.Errorf("copy-all failed: %w", err)
			}
			return nil
		},
	}
}

// openEntries expands args and loads them into ws.
func openEntries(ws *host.Workspace, args []string) error {
	entries, err := host.ExpandPaths(args, logging.Logger)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}
	if err := ws.Open(entries); err != nil {
		return fmt.Errorf("failed to open documents: %w", err)
	}
	return nil
}
