package pitch

import (
	"fmt"
	"strings"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/util"
)

// octaveMarkers maps runs of register markers to an explicit octave.
// Longer runs come first so "---" is never read as three single "-".
var octaveMarkers = []struct {
	marker string
	octave int
}{
	{"---", 1},
	{"--", 2},
	{"-", 3},
	{"+++", 7},
	{"++", 6},
	{"+", 5},
}

// durationMark is a note-length digit the dictionary leaves on some tokens.
const durationMark = "8"

var letterClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Normalize turns a vocabulary note token ("c---8", "g+8", "bb", "f#-") or a
// canonical pitch string ("G#4") into a Pitch. Tokens without register
// markers come back with an unset octave. Octave 8 has no canonical
// spelling here since the digit 8 is read as the duration mark.
func Normalize(token string) (model.Pitch, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Pitch{}, fmt.Errorf("%w: empty token", model.ErrMalformedPitchToken)
	}

	// canonical strings are upper case and parse as themselves, except that a
	// trailing 8 is always the duration mark ("B8" is B without an octave)
	if token[0] >= 'A' && token[0] <= 'G' && !strings.HasSuffix(token, durationMark) {
		if p, err := model.ParsePitch(token); err == nil {
			return p, nil
		}
	}

	letter := strings.ToUpper(token[:1])[0]
	if _, ok := letterClass[letter]; !ok {
		return model.Pitch{}, fmt.Errorf("%w: %q has no letter A-G", model.ErrMalformedPitchToken, token)
	}
	p := model.Pitch{Letter: letter, Octave: model.OctaveUnset}

	rest := token[1:]
	if n := runLength(rest, '#'); n > 0 {
		p.Accidental = n
		rest = rest[n:]
	} else if n := runLength(rest, 'b'); n > 0 {
		p.Accidental = -n
		rest = rest[n:]
	}
	if p.Accidental > model.MaxAccidentals || p.Accidental < -model.MaxAccidentals {
		return model.Pitch{}, fmt.Errorf("%w: %q has too many accidentals", model.ErrMalformedPitchToken, token)
	}

	rest = strings.ReplaceAll(rest, durationMark, "")
	if rest == "" {
		return p, nil
	}
	for _, m := range octaveMarkers {
		if rest == m.marker {
			p.Octave = m.octave
			return p, nil
		}
	}
	return model.Pitch{}, fmt.Errorf("%w: %q", model.ErrMalformedPitchToken, token)
}

// MustNormalize is Normalize for tokens known to be valid.
func MustNormalize(token string) model.Pitch {
	p, err := Normalize(token)
	if err != nil {
		panic(err)
	}
	return p
}

// NormalizeAll normalizes every token, stopping at the first bad one.
func NormalizeAll(tokens []string) ([]model.Pitch, error) {
	res := make([]model.Pitch, 0, len(tokens))
	for _, t := range tokens {
		p, err := Normalize(t)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// Class is the pitch class 0-11 (C = 0).
func Class(p model.Pitch) int {
	return mod12(letterClass[p.Letter] + p.Accidental)
}

// Midi returns the MIDI note number of p, placing pitches without an octave
// in defaultOctave. Middle C is C4 = 60.
func Midi(p model.Pitch, defaultOctave int) (uint8, error) {
	n := absolute(p, defaultOctave)
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%v is outside the MIDI range", p.WithOctave(octaveOr(p, defaultOctave)))
	}
	return uint8(n), nil
}

// MidiAll converts a pitch sequence, keeping its order.
func MidiAll(ps []model.Pitch, defaultOctave int) (model.Notes, error) {
	res := make(model.Notes, 0, len(ps))
	for _, p := range ps {
		n, err := Midi(p, defaultOctave)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

// FromMidi spells a MIDI note number, using flats when preferFlats is set.
func FromMidi(n uint8, preferFlats bool) model.Pitch {
	return spell(int(n)%12, int(n)/12-1, preferFlats)
}

// Transpose shifts p by the given number of semitones. Pitches without an
// octave stay without one and only change pitch class, so use TransposeIn
// when the result has to keep its register. Flat spellings stay flat,
// everything else is spelled with sharps.
func Transpose(p model.Pitch, semitones int) model.Pitch {
	if semitones == 0 {
		return p
	}
	preferFlats := p.Accidental < 0
	if !p.HasOctave() {
		return spell(mod12(Class(p)+semitones), model.OctaveUnset, preferFlats)
	}
	n := absolute(p, p.Octave) + semitones
	return spell(mod12(n), floorDiv(n, 12)-1, preferFlats)
}

func TransposeAll(ps []model.Pitch, semitones int) []model.Pitch {
	res := make([]model.Pitch, len(ps))
	for i, p := range ps {
		res[i] = Transpose(p, semitones)
	}
	return res
}

// TransposeIn places pitches without an octave in defaultOctave before
// shifting them, so a note pushed past B lands in the next octave up and
// the order of a voicing survives.
func TransposeIn(p model.Pitch, semitones, defaultOctave int) model.Pitch {
	if semitones == 0 {
		return p
	}
	return Transpose(p.WithOctave(octaveOr(p, defaultOctave)), semitones)
}

func TransposeAllIn(ps []model.Pitch, semitones, defaultOctave int) []model.Pitch {
	res := make([]model.Pitch, len(ps))
	for i, p := range ps {
		res[i] = TransposeIn(p, semitones, defaultOctave)
	}
	return res
}

// KeyboardRange returns the first and last keys of a keyboard that shows
// every note: C of the lowest octave through B of the highest one.
func KeyboardRange(ps []model.Pitch, defaultOctave int) (model.Pitch, model.Pitch, error) {
	if len(ps) == 0 {
		return model.Pitch{}, model.Pitch{}, fmt.Errorf("no notes to fit on a keyboard")
	}
	low, high := absolute(ps[0], defaultOctave), absolute(ps[0], defaultOctave)
	for _, p := range ps[1:] {
		n := absolute(p, defaultOctave)
		low, high = util.Min(low, n), util.Max(high, n)
	}
	first := model.Pitch{Letter: 'C', Octave: floorDiv(low, 12) - 1}
	last := model.Pitch{Letter: 'B', Octave: floorDiv(high, 12) - 1}
	return first, last, nil
}

func absolute(p model.Pitch, defaultOctave int) int {
	return (octaveOr(p, defaultOctave)+1)*12 + letterClass[p.Letter] + p.Accidental
}

func octaveOr(p model.Pitch, defaultOctave int) int {
	if p.HasOctave() {
		return p.Octave
	}
	return defaultOctave
}

func spell(class, octave int, preferFlats bool) model.Pitch {
	name := sharpNames[class]
	if preferFlats {
		name = flatNames[class]
	}
	p := model.Pitch{Letter: name[0], Octave: octave}
	if len(name) > 1 {
		if name[1] == '#' {
			p.Accidental = 1
		} else {
			p.Accidental = -1
		}
	}
	return p
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
