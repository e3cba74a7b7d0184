package cmd

import (
	"io"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists chords",
	Long:  `Lists every primary chord in vocabulary order with its voicings and aliases.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return list(cmd.OutOrStdout(), c, flagFormat)
	},
}

func list(w io.Writer, c *catalog.Catalog, format string) error {
	chords := c.Summaries()
	return output(w, format, chords, func(w io.Writer) { formatSummariesText(w, chords) })
}
