package cmd

import (
	"io"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scalesCmd)
}

var scalesCmd = &cobra.Command{
	Use:   "scales [name]",
	Short: "Lists scales, or shows one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return scales(cmd.OutOrStdout(), c, args, flagFormat)
	},
}

func scales(w io.Writer, c *catalog.Catalog, names []string, format string) error {
	if len(names) == 0 {
		names = c.ScaleNames()
	}
	res := make([]model.Scale, 0, len(names))
	for _, name := range names {
		s, err := c.Scale(name)
		if err != nil {
			return err
		}
		res = append(res, s)
	}
	return output(w, format, res, func(w io.Writer) { formatScalesText(w, res) })
}
