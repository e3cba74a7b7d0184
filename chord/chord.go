package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/pitch"
	"gitlab.com/gomidi/midi/v2/smf"
)

// CreateChordKey joins sorted notes with "-", e.g. "0-4-7". notes is
// left untouched.
func CreateChordKey(notes []uint8) string {
	sorted := make([]uint8, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// PitchClasses reduces MIDI notes to their distinct pitch classes.
func PitchClasses(notes []uint8) []uint8 {
	seen := make(map[uint8]bool)
	var res []uint8
	for _, n := range notes {
		c := n % 12
		if !seen[c] {
			seen[c] = true
			res = append(res, c)
		}
	}
	return res
}

// ClassKey is the chord key of the pitch classes in notes, so every
// inversion and spacing of a chord shares one key.
func ClassKey(notes []uint8) string {
	return CreateChordKey(PitchClasses(notes))
}

// VoicingKey is the class key of a voicing's notes.
func VoicingKey(v model.Voicing) string {
	classes := make([]uint8, 0, len(v.Notes))
	for _, p := range v.Notes {
		classes = append(classes, uint8(pitch.Class(p)))
	}
	return ClassKey(classes)
}

// Sounding is a set of notes held together at Offset (microseconds from
// the start of the file).
type Sounding struct {
	Offset int64
	Notes  model.Notes
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	note      uint8
}

func getChord(pressed map[uint8]int64, offset int64) Sounding {
	c := Sounding{Offset: offset}
	for note := range pressed {
		c.Notes = append(c.Notes, note)
	}
	sort.Slice(c.Notes, func(i, j int) bool {
		return c.Notes[i] < c.Notes[j]
	})
	return c
}

// GetChords lists the note sets sounding after every change in s, in time
// order. Moments where nothing sounds are skipped.
func GetChords(s *smf.SMF) (chords []Sounding, err error) {
	// smf can panic on malformed tracks
	defer func() {
		if r := recover(); r != nil {
			chords, err = nil, fmt.Errorf("reading midi events: %v", r)
		}
	}()

	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, isNoteOff: velocity == 0, note: key})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, isNoteOff: true, note: key})
			}
		}
	}

	// earlier first, note offs before note ons at the same time
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	timestampToChords := make(map[int64]Sounding)
	var timestamps []int64
	pressed := make(map[uint8]int64)
	for _, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = evt.offset
		}
		if _, ok := timestampToChords[evt.offset]; !ok {
			timestamps = append(timestamps, evt.offset)
		}
		timestampToChords[evt.offset] = getChord(pressed, evt.offset)
	}

	for _, ts := range timestamps {
		if c := timestampToChords[ts]; len(c.Notes) > 0 {
			chords = append(chords, c)
		}
	}
	return chords, nil
}
