package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	pinsFile  string
	pinsFlags []string
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "Print the effective pin table",
	Long: `Print the pin table build would use: the built-in defaults overlaid by the
--pins file (or the pins_file setting) and by --pin name=value flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadPinTable(pinsFile, pinsFlags)
		if err != nil {
			return errors.Wrap(err, "loading pin table")
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PIN\tSTATE")
		for _, name := range table.Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, table[name])
		}
		return w.Flush()
	},
}

func init() {
	pinsCmd.Flags().StringVar(&pinsFile, "pins", "", "Pin table file (.yaml, .yml or .hcl)")
	pinsCmd.Flags().StringArrayVar(&pinsFlags, "pin", nil, "Pin assignment name=value (can be specified multiple times)")
	rootCmd.AddCommand(pinsCmd)
}
