package cmd

import (
	"colophon/pkg/config"
	"colophon/pkg/host"
	"colophon/pkg/logging"
	"colophon/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath    string
	debug         bool
	stdout        bool
	roots         []string
	noGitRoot     bool
	language      string
	maxFileSizeKB int

	minPercentage float64
	absolutePath  bool
	patterns      []string
	ignores       []string
	documentSet   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "colophon",
		Short: "Copy code with a comment naming the file it came from",
		Long: `Colophon copies selections and whole files to the clipboard, prepending a
comment in the file's own syntax that names its path. Small selections and
files outside the configured patterns are copied unchanged.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logging.Setup(opts.debug, version.AppName, version.Version)
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: nearest .colophon.yaml, .colophon.yml or .colophon.json)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.stdout, "stdout", false, "Print to stdout instead of the system clipboard")
	flags.StringSliceVarP(&opts.roots, "workspace", "w", nil, "Workspace folder used for relative paths (repeatable)")
	flags.BoolVar(&opts.noGitRoot, "no-git-root", false, "Do not use the enclosing git worktree as a workspace folder")
	flags.StringVar(&opts.language, "language", "", "Language identifier to use instead of detecting it from the extension")
	flags.IntVar(&opts.maxFileSizeKB, "max-file-size-kb", host.DefaultMaxFileSizeKB, "Skip files larger than this")
	flags.Float64Var(&opts.minPercentage, "min-percentage", config.DefaultMinimumCopyPercentage, "Minimum share of lines a selection must cover to get a header")
	flags.BoolVar(&opts.absolutePath, "absolute-path", false, "Name files by base name only instead of workspace-relative path")
	flags.StringArrayVar(&opts.patterns, "pattern", nil, "File pattern to annotate, replacing the configured ones (repeatable)")
	flags.StringArrayVar(&opts.ignores, "ignore", nil, "Additional ignore pattern (repeatable)")
	flags.StringVar(&opts.documentSet, "document-set", "", "Documents considered by copy-all: open, visible or all")

	rootCmd.AddCommand(
		newCopyCmd(opts),
		newCutCmd(opts),
		newCopyAllCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves the configuration for this invocation. Flags win over
// files.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Options{Path: o.configPath}, logging.Logger)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-percentage") {
		cfg.MinimumCopyPercentage = o.minPercentage
	}
	if flags.Changed("absolute-path") {
		cfg.UseRelativePath = !o.absolutePath
	}
	if flags.Changed("pattern") {
		cfg.FilePatterns = o.patterns
	}
	if flags.Changed("ignore") {
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, o.ignores...)
	}
	if flags.Changed("document-set") {
		cfg.DocumentSet = config.DocumentSet(o.documentSet)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Logger.Debug("Resolved configuration",
		zap.String("file", cfg.Location()),
		zap.Strings("filePatterns", cfg.FilePatterns),
		zap.Strings("ignorePatterns", cfg.IgnorePatterns),
		zap.Float64("minimumCopyPercentage", cfg.MinimumCopyPercentage),
		zap.Bool("useRelativePath", cfg.UseRelativePath),
		zap.String("documentSet", string(cfg.DocumentSet)))
	return cfg, nil
}

// newWorkspace builds the host the commands run against.
func (o *rootOptions) newWorkspace(cmd *cobra.Command) (*host.Workspace, error) {
	var clip host.Clipboard = host.SystemClipboard{}
	if o.stdout {
		clip = host.NewWriterClipboard(cmd.OutOrStdout())
	}

	return host.NewWorkspace(host.Options{
		Roots:         o.roots,
		DetectGitRoot: !o.noGitRoot,
		MaxFileSizeKB: o.maxFileSizeKB,
		LanguageID:    o.language,
		Clipboard:     clip,
		Notify:        cmd.ErrOrStderr(),
		Logger:        logging.Logger,
	})
}
