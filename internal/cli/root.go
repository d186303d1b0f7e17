package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/squaremap/squaremap/pkg/buildinfo"
)

// appName is used for cache and config paths.
const appName = "squaremap"

// Execute runs the squaremap CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (render,
// preview, cache), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "squaremap",
		Short:        "Squaremap draws squarified treemaps from tabular data",
		Long:         `Squaremap is a CLI tool for turning tabular data into squarified treemaps with hierarchical grouping, automatic label fitting, and categorical or continuous fill colors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
