package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/chord"
	"github.com/jsphweid/voicedex/midi"
	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(identifyCmd)
}

var identifyCmd = &cobra.Command{
	Use:   "identify <file.mid>",
	Short: "Names the chords sounding in a MIDI file",
	Long:  `Reads a Standard MIDI File and, for every change in the set of held notes, lists the vocabulary voicings with the same pitch classes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return identify(cmd.OutOrStdout(), c, args[0], flagFormat)
	},
}

type identified struct {
	Offset  int64                `json:"offset_us" yaml:"offset_us"`
	Notes   []string             `json:"notes" yaml:"notes"`
	Key     string               `json:"key" yaml:"key"`
	Matches []model.SearchResult `json:"matches" yaml:"matches"`
}

func identify(w io.Writer, c *catalog.Catalog, path, format string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	soundings, err := chord.GetChords(s)
	if err != nil {
		return fmt.Errorf("reading chords from %s: %w", path, err)
	}

	res := make([]identified, 0, len(soundings))
	for _, snd := range soundings {
		names := make([]string, 0, len(snd.Notes))
		for _, n := range snd.Notes {
			names = append(names, pitch.FromMidi(n, false).String())
		}
		matches := c.Search(snd.Notes)
		if matches == nil {
			matches = []model.SearchResult{}
		}
		res = append(res, identified{
			Offset:  snd.Offset,
			Notes:   names,
			Key:     chord.ClassKey(snd.Notes),
			Matches: matches,
		})
	}

	return output(w, format, res, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "OFFSET (us)\tNOTES\tMATCHES")
		for _, r := range res {
			labels := make([]string, 0, len(r.Matches))
			for _, m := range r.Matches {
				labels = append(labels, m.Chord+" "+m.Label)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Offset, strings.Join(r.Notes, " "), strings.Join(labels, ", "))
		}
		tw.Flush()
	})
}
