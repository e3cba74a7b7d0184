package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/spf13/cobra"
)

var flagStrict bool

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&flagStrict, "strict", false, "fail when references are unresolved")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports catalog statistics and unresolved references",
	Long:  `Reports catalog statistics and every extensions, substitute or scales reference that names nothing in the catalog.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), c, flagFormat, flagStrict)
	},
}

type catalogReport struct {
	Build   string           `json:"build" yaml:"build"`
	Source  string           `json:"source" yaml:"source"`
	Stats   catalog.Stats    `json:"stats" yaml:"stats"`
	Orphans []catalog.Orphan `json:"orphans" yaml:"orphans"`
}

func report(w io.Writer, c *catalog.Catalog, format string, strict bool) error {
	r := catalogReport{
		Build:   c.BuildID(),
		Source:  c.Source().Path,
		Stats:   c.Stats(),
		Orphans: c.Orphans(),
	}
	if r.Orphans == nil {
		r.Orphans = []catalog.Orphan{}
	}

	err := output(w, format, r, func(w io.Writer) {
		fmt.Fprintf(w, "source: %s\n", r.Source)
		fmt.Fprintf(w, "build: %s\n", r.Build)
		fmt.Fprintf(w, "chords: %d\n", r.Stats.Chords)
		fmt.Fprintf(w, "aliases: %d\n", r.Stats.Aliases)
		fmt.Fprintf(w, "voicings: %d\n", r.Stats.Voicings)
		fmt.Fprintf(w, "scales: %d\n", r.Stats.Scales)
		fmt.Fprintf(w, "orphans: %d\n", r.Stats.Orphans)
		if len(r.Orphans) == 0 {
			return
		}
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CHORD\tFIELD\tREF")
		for _, o := range r.Orphans {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Chord, o.Field, o.Ref)
		}
		tw.Flush()
	})
	if err != nil {
		return err
	}

	if strict && len(r.Orphans) > 0 {
		return fmt.Errorf("%d unresolved references", len(r.Orphans))
	}
	return nil
}
