package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"colophon/pkg/annotate"
	"colophon/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// selectionOptions holds the flags of copy and cut.
type selectionOptions struct {
	lines      string
	appendMode bool
}

func newCopyCmd(root *rootOptions) *cobra.Command {
	opts := &selectionOptions{}
	copyCmd := &cobra.Command{
		Use:   "copy FILE",
		Short: "Copy a file or a range of its lines, with a header comment",
		Long: `Copy a file, or the lines chosen with --lines, to the clipboard. A comment
naming the file is prepended when the file matches the configured patterns
and the selection covers at least minimumCopyPercentage of its lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelection(cmd, root, opts, args[0], false)
		},
	}
	copyCmd.Flags().StringVarP(&opts.lines, "lines", "l", "", "Line range START:END, 1-based and inclusive (default: whole file)")
	copyCmd.Flags().BoolVarP(&opts.appendMode, "append", "a", false, "Append to the current clipboard contents")
	return copyCmd
}

func newCutCmd(root *rootOptions) *cobra.Command {
	opts := &selectionOptions{}
	cutCmd := &cobra.Command{
		Use:   "cut FILE",
		Short: "Like copy, then remove the selected lines from the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelection(cmd, root, opts, args[0], true)
		},
	}
	cutCmd.Flags().StringVarP(&opts.lines, "lines", "l", "", "Line range START:END, 1-based and inclusive (default: whole file)")
	return cutCmd
}

// runSelection copies the selected lines of path and, for a cut, removes
// them once the clipboard holds them.
func runSelection(cmd *cobra.Command, root *rootOptions, opts *selectionOptions, path string, cut bool) error {
	logger := logging.Logger

	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ws, err := root.newWorkspace(cmd)
	if err != nil {
		return fmt.Errorf("failed to set up workspace: %w", err)
	}

	doc, err := ws.LoadDocument(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	sel, err := selectLines(doc, opts.lines)
	if err != nil {
		return err
	}

	annotator := annotate.New(ws, logger)
	annotated, err := annotator.Copy(doc, sel, cfg, opts.appendMode)
	if err != nil {
		return err
	}

	if cut {
		if err := ws.RemoveSelection(doc, sel); err != nil {
			return fmt.Errorf("failed to complete cut: %w", err)
		}
	}

	logger.Debug("Selection handled",
		zap.String("path", doc.Path),
		zap.Bool("cut", cut),
		zap.Bool("annotated", annotated))
	return nil
}

// selectLines parses a START:END range (1-based, inclusive) into a
// selection. An empty range selects the whole document; a single number
// selects one line.
func selectLines(doc annotate.Document, lineRange string) (annotate.Selection, error) {
	if lineRange == "" {
		return doc.SelectAll(), nil
	}

	startText, endText, found := strings.Cut(lineRange, ":")
	if !found {
		endText = startText
	}

	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return annotate.Selection{}, fmt.Errorf("%w: bad start line %q", annotate.ErrInvalidSelection, startText)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return annotate.Selection{}, fmt.Errorf("%w: bad end line %q", annotate.ErrInvalidSelection, endText)
	}

	return doc.Select(start-1, end-1)
}
