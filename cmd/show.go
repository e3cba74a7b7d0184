package cmd

import (
	"io"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/spf13/cobra"
)

var flagTranspose int

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&flagTranspose, "transpose", 0, "semitones to transpose the voicing by")
}

var showCmd = &cobra.Command{
	Use:   "show <chord> [voicing]",
	Short: "Shows a chord or one of its voicings",
	Long:  `Shows a chord, looked up by name or alias. With a voicing name, shows that voicing with MIDI numbers and the keyboard range it needs.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return showChord(cmd.OutOrStdout(), c, args[0], flagFormat)
		}
		return showVoicing(cmd.OutOrStdout(), c, args[0], args[1], flagTranspose, cfg.Vocab.DefaultChordOctave, flagFormat)
	},
}

func showChord(w io.Writer, c *catalog.Catalog, name, format string) error {
	ch, err := c.Chord(name)
	if err != nil {
		return err
	}
	return output(w, format, ch, func(w io.Writer) { formatChordText(w, ch) })
}

func showVoicing(w io.Writer, c *catalog.Catalog, name, voicing string, transpose, defaultOctave int, format string) error {
	v, err := c.VoicingView(name, voicing, transpose, defaultOctave)
	if err != nil {
		return err
	}
	return output(w, format, v, func(w io.Writer) { formatVoicingText(w, v) })
}
