package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jsphweid/voicedex/model"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatYAML = "yaml"
)

func validateFormat(f string) error {
	switch f {
	case formatJSON, formatText, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, text or yaml)", f)
}

// output writes v in the selected format. text may be nil for values
// that only have a structured form.
func output(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if text == nil {
			return fmt.Errorf("format %q is not available here, use json or yaml", format)
		}
		text(w)
		return nil
	}
}

func joinPitches(ps []model.Pitch) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

func formatSummariesText(w io.Writer, chords []model.ChordSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPRONOUNCE\tFAMILY\tVOICINGS\tALIASES")
	for _, c := range chords {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Pronounce, c.Family, strings.Join(c.Voicings, ", "), strings.Join(c.Same, ", "))
	}
	tw.Flush()
}

func formatChordText(w io.Writer, c model.Chord) {
	fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Pronounce)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "key\t%s\n", c.Key)
	fmt.Fprintf(tw, "family\t%s\n", c.Family)
	fmt.Fprintf(tw, "spell\t%s\n", joinPitches(c.Spell))
	fmt.Fprintf(tw, "color\t%s\n", joinPitches(c.Color))
	fmt.Fprintf(tw, "priority\t%s\n", joinPitches(c.Priority))
	for _, a := range c.Approach {
		fmt.Fprintf(tw, "approach\t%s\n", joinPitches(a))
	}
	fmt.Fprintf(tw, "avoid\t%s\n", joinPitches(c.Avoid))
	fmt.Fprintf(tw, "extensions\t%s\n", strings.Join(c.Extensions, ", "))
	fmt.Fprintf(tw, "scales\t%s\n", strings.Join(c.Scales, ", "))
	fmt.Fprintf(tw, "substitute\t%s\n", strings.Join(c.Substitute, ", "))
	fmt.Fprintf(tw, "same\t%s\n", strings.Join(c.Same, ", "))
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VOICING\tTYPE\tNOTES\tEXTENSION")
	for _, v := range c.Voicings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, v.Type, joinPitches(v.Notes), joinPitches(v.Extension))
	}
	tw.Flush()
}

func formatVoicingText(w io.Writer, v model.VoicingResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "chord\t%s\n", v.Chord)
	fmt.Fprintf(tw, "voicing\t%s\n", v.Label)
	if v.Transpose != 0 {
		fmt.Fprintf(tw, "transpose\t%+d\n", v.Transpose)
	}
	fmt.Fprintf(tw, "notes\t%s\n", joinPitches(v.Voicing.Notes))
	fmt.Fprintf(tw, "extension\t%s\n", joinPitches(v.Voicing.Extension))
	fmt.Fprintf(tw, "midi\t%v\n", v.Midi)
	fmt.Fprintf(tw, "keyboard\t%s..%s\n", v.RangeStart, v.RangeEnd)
	tw.Flush()
}

func formatScalesText(w io.Writer, scales []model.Scale) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPITCHES\tSAME")
	for _, s := range scales {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, joinPitches(s.Pitches), s.Same)
	}
	tw.Flush()
}
