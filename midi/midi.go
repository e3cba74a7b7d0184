package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	Channel         uint8
	Velocity        uint8
	TicksPerQuarter uint16
	BPM             float64

	// How long the full chord is held once every note has sounded.
	DurationTicks uint32

	// Gap between successive note ons; 0 strikes the chord at once.
	ArpeggioTicks uint32
}

func DefaultOptions() Options {
	return Options{
		Velocity:        constants.DefaultVelocity,
		TicksPerQuarter: constants.DefaultTicksPerQuarter,
		BPM:             120,
		DurationTicks:   constants.DefaultDurationTicks,
	}
}

// WriteVoicing writes notes as a single-track Standard MIDI File, bottom
// note first.
func WriteVoicing(w io.Writer, notes model.Notes, opts Options) error {
	if len(notes) == 0 {
		return errors.New("no notes to write")
	}
	if opts.Channel > 15 {
		return fmt.Errorf("midi channel %d out of range", opts.Channel)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opts.BPM))
	for i, n := range notes {
		var delta uint32
		if i > 0 {
			delta = opts.ArpeggioTicks
		}
		tr.Add(delta, gomidi.NoteOn(opts.Channel, n, opts.Velocity))
	}
	for i, n := range notes {
		var delta uint32
		if i == 0 {
			delta = opts.DurationTicks
		}
		tr.Add(delta, gomidi.NoteOff(opts.Channel, n))
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return fmt.Errorf("adding track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi: %w", err)
	}
	return nil
}

func WriteVoicingFile(path string, notes model.Notes, opts Options) error {
	var buf bytes.Buffer
	if err := WriteVoicing(&buf, notes, opts); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadMidi parses a Standard MIDI File.
func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("Error parsing midi file... %v", r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}
	return ReadMidi(bytes.NewReader(dat))
}
