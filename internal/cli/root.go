package cli

import (
	"fmt"
	"os"

	"github.com/aio-labs/aio/internal/branding"
	"github.com/aio-labs/aio/internal/config"
	"github.com/aio-labs/aio/internal/logging"
	"github.com/aio-labs/aio/internal/pins"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel  string
	logFormat string
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads .aio documents, each holding tagged blocks of markup, styles,
scripts, project descriptors and source files, and scaffolds the project they describe.
Every document may also carry a small command script that creates or conditionally
deletes files after generation; conditions are read from a pin table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		l, err := logging.New(config.Logging())
		if err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		logger = l
		cmd.SetContext(logging.WithLogger(cmd.Context(), l))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console or json)")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadPinTable layers the built-in defaults, the pin file (flag, else the
// pins_file setting) and name=value assignments.
func loadPinTable(file string, assignments []string) (pins.Table, error) {
	table := pins.Defaults()
	if file == "" {
		file = config.Get(config.KeyPinsFile)
	}
	if file != "" {
		fromFile, err := pins.LoadFile(file)
		if err != nil {
			return nil, err
		}
		table = table.Merge(fromFile)
	}
	if len(assignments) > 0 {
		fromFlags, err := pins.ParseAssignments(assignments)
		if err != nil {
			return nil, err
		}
		table = table.Merge(fromFlags)
	}
	return table, nil
}
