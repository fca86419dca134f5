package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aio-labs/aio/internal/branding"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

// versionInfo is the build stamp injected through Execute.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func currentVersion() versionInfo {
	return versionInfo{Version: buildVersion, Commit: buildCommit, Date: buildDate}
}

func (v versionInfo) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", branding.CLIName(), v.Version, v.Commit, v.Date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print the build stamp as JSON")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := currentVersion()
	out := cmd.OutOrStdout()
	switch {
	case versionShort:
		fmt.Fprintln(out, info.Version)
	case versionJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return errors.Wrap(err, "encoding version info")
		}
	default:
		fmt.Fprintln(out, info)
	}
	return nil
}
