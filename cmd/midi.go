package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/midi"
	"github.com/jsphweid/voicedex/model"
	"github.com/spf13/cobra"
)

var (
	flagMidiOut       string
	flagMidiTranspose int
	flagArpeggio      uint32
)

func init() {
	rootCmd.AddCommand(midiCmd)
	midiCmd.Flags().StringVarP(&flagMidiOut, "output", "o", "", "file to write (default: <chord>-<voicing>.mid)")
	midiCmd.Flags().IntVar(&flagMidiTranspose, "transpose", 0, "semitones to transpose the voicing by")
	midiCmd.Flags().Uint32Var(&flagArpeggio, "arpeggio", 0, "ticks between note ons (default from config)")
}

var midiCmd = &cobra.Command{
	Use:   "midi <chord> <voicing>",
	Short: "Writes a voicing as a MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		opts := cfg.MidiOptions()
		if cmd.Flags().Changed("arpeggio") {
			opts.ArpeggioTicks = flagArpeggio
		}
		path, err := writeMidi(c, args[0], args[1], flagMidiOut, flagMidiTranspose, cfg.Vocab.DefaultChordOctave, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// writeMidi renders one voicing and returns the path written.
func writeMidi(c *catalog.Catalog, chordName, voicing, path string, transpose, defaultOctave int, opts midi.Options) (string, error) {
	v, err := c.VoicingView(chordName, voicing, transpose, defaultOctave)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("%s-%s.mid", v.Chord, v.Voicing.Name)
	}

	notes := make(model.Notes, 0, len(v.Midi))
	for _, n := range v.Midi {
		notes = append(notes, uint8(n))
	}
	if err := midi.WriteVoicingFile(path, notes, opts); err != nil {
		return "", err
	}
	slog.Info("wrote midi", "path", path, "chord", v.Chord, "voicing", v.Voicing.Name, "notes", v.Midi)
	return path, nil
}
