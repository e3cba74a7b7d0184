package model

import (
	"fmt"
	"strings"
)

// OctaveUnset marks a pitch whose register was not written in the source.
const OctaveUnset = -1

// Pitch is a spelled note: letter name, accidental and (optional) octave.
// Accidental is negative for flats and positive for sharps.
type Pitch struct {
	Letter     byte
	Accidental int
	Octave     int
}

func (p Pitch) HasOctave() bool {
	return p.Octave != OctaveUnset
}

// WithOctave returns a copy of p in the given octave.
func (p Pitch) WithOctave(octave int) Pitch {
	p.Octave = octave
	return p
}

func (p Pitch) String() string {
	var sb strings.Builder
	sb.WriteByte(p.Letter)
	switch {
	case p.Accidental > 0:
		sb.WriteString(strings.Repeat("#", p.Accidental))
	case p.Accidental < 0:
		sb.WriteString(strings.Repeat("b", -p.Accidental))
	}
	if p.HasOctave() {
		fmt.Fprintf(&sb, "%d", p.Octave)
	}
	return sb.String()
}

func (p Pitch) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pitch) UnmarshalText(text []byte) error {
	parsed, err := ParsePitch(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePitch reads the canonical form produced by Pitch.String, e.g. "G#4",
// "Bb" or "C1".
func ParsePitch(s string) (Pitch, error) {
	if len(s) == 0 {
		return Pitch{}, fmt.Errorf("%w: empty pitch", ErrMalformedPitchToken)
	}
	p := Pitch{Letter: s[0], Octave: OctaveUnset}
	if p.Letter < 'A' || p.Letter > 'G' {
		return Pitch{}, fmt.Errorf("%w: %q has no letter A-G", ErrMalformedPitchToken, s)
	}

	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		n := len(rest) - len(strings.TrimLeft(rest, "#"))
		p.Accidental = n
		rest = rest[n:]
	case strings.HasPrefix(rest, "b"):
		n := len(rest) - len(strings.TrimLeft(rest, "b"))
		p.Accidental = -n
		rest = rest[n:]
	}
	if p.Accidental > MaxAccidentals || p.Accidental < -MaxAccidentals {
		return Pitch{}, fmt.Errorf("%w: %q has too many accidentals", ErrMalformedPitchToken, s)
	}

	switch {
	case rest == "":
	case len(rest) == 1 && rest[0] >= '0' && rest[0] <= '9':
		p.Octave = int(rest[0] - '0')
	default:
		return Pitch{}, fmt.Errorf("%w: %q", ErrMalformedPitchToken, s)
	}
	return p, nil
}

// MaxAccidentals bounds the number of repeated sharps or flats on one pitch.
const MaxAccidentals = 3

// Notes is a sequence of MIDI note numbers.
type Notes = []uint8
