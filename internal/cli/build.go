package cli

import (
	"fmt"
	"sort"

	"github.com/aio-labs/aio/internal/config"
	"github.com/aio-labs/aio/internal/discover"
	"github.com/aio-labs/aio/internal/generate"
	"github.com/aio-labs/aio/internal/logging"
	"github.com/aio-labs/aio/internal/metrics"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildOutputBase  string
	buildPinsFile    string
	buildPinFlags    []string
	buildRecursive   bool
	buildMetricsFile string
)

var buildCmd = &cobra.Command{
	Use:   "build [paths...]",
	Short: "Generate projects from .aio documents",
	Long: `Process .aio documents and write the projects they describe.

Arguments may be documents or directories; directories are searched for *.aio
files (add --recursive to descend). Without arguments the current directory is
searched. Each document writes below its output_dir, resolved against
--output-base.

Conditional deletes consult the pin table: built-in defaults, overlaid by the
--pins file (YAML or HCL) and then by --pin name=value flags.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputBase, "output-base", "o", "", "Directory output_dir is resolved against (default: output_base setting, else .)")
	buildCmd.Flags().StringVar(&buildPinsFile, "pins", "", "Pin table file (.yaml, .yml or .hcl)")
	buildCmd.Flags().StringArrayVar(&buildPinFlags, "pin", nil, "Pin assignment name=value (can be specified multiple times)")
	buildCmd.Flags().BoolVarP(&buildRecursive, "recursive", "r", false, "Search directories recursively")
	buildCmd.Flags().StringVar(&buildMetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	table, err := loadPinTable(buildPinsFile, buildPinFlags)
	if err != nil {
		return errors.Wrap(err, "loading pin table")
	}

	base := buildOutputBase
	if base == "" {
		base = config.Get(config.KeyOutputBase)
	}

	fs := afero.NewOsFs()
	paths, err := discover.Expand(fs, args, buildRecursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(out, "No .aio documents found.")
		return nil
	}
	log.Debug("documents found", zap.Strings("paths", paths))

	rec := metrics.New()
	g := generate.New(fs, generate.Options{
		BaseDir:     base,
		Pins:        table,
		ToolVersion: buildVersion,
	}, rec)

	sum, runErr := g.Run(ctx, paths)

	for _, res := range sum.Results {
		fmt.Fprintf(out, "Generated %s -> %s (%d files, %d commands)\n",
			res.Document, res.OutputRoot, len(res.Emitted.Written), len(res.Commands))
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		for _, f := range res.Emitted.Failed {
			fmt.Fprintf(out, "  failed to write: %s\n", f)
		}
	}
	failed := make([]string, 0, len(sum.Failed))
	for p := range sum.Failed {
		failed = append(failed, p)
	}
	sort.Strings(failed)
	for _, p := range failed {
		fmt.Fprintf(out, "Skipped %s: %v\n", p, sum.Failed[p])
	}

	if buildMetricsFile != "" {
		if err := rec.WriteTextfile(buildMetricsFile); err != nil {
			log.Warn("metrics not written", zap.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	if len(failed) > 0 {
		return errors.Newf("%d of %d documents failed", len(failed), len(paths))
	}
	return nil
}
