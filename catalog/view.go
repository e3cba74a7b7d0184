package catalog

import (
	"fmt"
	"time"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/pitch"
	"github.com/jsphweid/voicedex/util"
)

// largest transposition accepted by VoicingView, in semitones either way
const MaxTranspose = 24

// Summaries lists every primary chord in catalog order.
func (c *Catalog) Summaries() []model.ChordSummary {
	res := make([]model.ChordSummary, 0, len(c.chordNames))
	for _, name := range c.chordNames {
		ch := c.chords[name]
		voicings := make([]string, 0, len(ch.Voicings))
		for _, v := range ch.Voicings {
			voicings = append(voicings, v.Name)
		}
		res = append(res, model.ChordSummary{
			Name:      ch.Name,
			Pronounce: ch.Pronounce,
			Family:    ch.Family,
			Voicings:  voicings,
			Same:      util.Clone(ch.Same),
		})
	}
	return res
}

// VoicingView transposes a voicing and works out what a keyboard needs to
// show it. Pitches without a register sound in defaultOctave, and once
// transposed they carry that register explicitly.
func (c *Catalog) VoicingView(chordName, voicing string, transpose, defaultOctave int) (model.VoicingResponse, error) {
	if transpose < -MaxTranspose || transpose > MaxTranspose {
		return model.VoicingResponse{}, fmt.Errorf("transpose %d outside -%d..%d: %w", transpose, MaxTranspose, MaxTranspose, model.ErrBadRequest)
	}
	v, err := c.Voicing(chordName, voicing)
	if err != nil {
		return model.VoicingResponse{}, err
	}
	canonical, _ := c.Canonical(chordName)

	v.Notes = pitch.TransposeAllIn(v.Notes, transpose, defaultOctave)
	v.Extension = pitch.TransposeAll(v.Extension, transpose)
	notes, err := pitch.MidiAll(v.Notes, defaultOctave)
	if err != nil {
		return model.VoicingResponse{}, fmt.Errorf("%w: %v", model.ErrBadRequest, err)
	}
	start, end, err := pitch.KeyboardRange(v.Notes, defaultOctave)
	if err != nil {
		return model.VoicingResponse{}, fmt.Errorf("%w: %v", model.ErrBadRequest, err)
	}

	numbers := make([]int, 0, len(notes))
	for _, n := range notes {
		numbers = append(numbers, int(n))
	}
	return model.VoicingResponse{
		Chord:      canonical,
		Voicing:    v,
		Label:      v.Label(),
		Transpose:  transpose,
		Midi:       numbers,
		RangeStart: start,
		RangeEnd:   end,
	}, nil
}

// Export copies the whole catalog into a plain document.
func (c *Catalog) Export() model.CatalogExport {
	chords := make([]model.Chord, 0, len(c.chordNames))
	for _, name := range c.chordNames {
		chords = append(chords, cloneChord(c.chords[name]))
	}
	scales := make([]model.Scale, 0, len(c.scaleNames))
	for _, name := range c.scaleNames {
		s := c.scales[name]
		s.Pitches = util.Clone(s.Pitches)
		scales = append(scales, s)
	}
	return model.CatalogExport{
		Build:    c.build,
		Source:   c.source.Path,
		LoadedAt: c.loadedAt.UTC().Format(time.RFC3339),
		Chords:   chords,
		Scales:   scales,
		Aliases:  c.Aliases(),
	}
}
