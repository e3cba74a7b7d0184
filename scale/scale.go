package scale

import (
	"fmt"

	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/pitch"
	"github.com/jsphweid/voicedex/record"
)

// Table holds resolved scales in file order.
type Table struct {
	Names  []string
	ByName map[string]model.Scale
}

func (t Table) Get(name string) (model.Scale, bool) {
	s, ok := t.ByName[name]
	return s, ok
}

type Options struct {
	// Octave given to spelled pitches that carry no register.
	DefaultOctave int
}

func DefaultOptions() Options {
	return Options{DefaultOctave: constants.DefaultScaleOctave}
}

// Build resolves scale records in order. A "same" entry can only refer to
// a scale defined earlier in the file.
func Build(records []record.Record, opts Options) (Table, error) {
	t := Table{ByName: make(map[string]model.Scale, len(records))}
	for _, r := range records {
		s, err := buildOne(r, t, opts)
		if err != nil {
			return Table{}, err
		}
		if _, dup := t.ByName[s.Name]; dup {
			return Table{}, &model.RecordError{Tag: constants.ScaleTag, Name: s.Name, Err: model.ErrDuplicateEntry}
		}
		t.ByName[s.Name] = s
		t.Names = append(t.Names, s.Name)
	}
	return t, nil
}

func buildOne(r record.Record, t Table, opts Options) (model.Scale, error) {
	name, err := r.Text(constants.FieldName)
	if err != nil {
		return model.Scale{}, &model.RecordError{Tag: constants.ScaleTag, Field: constants.FieldName, Err: err}
	}
	fail := func(field string, err error) (model.Scale, error) {
		return model.Scale{}, &model.RecordError{Tag: constants.ScaleTag, Name: name, Field: field, Err: err}
	}

	switch {
	case r.Has(constants.FieldSpell):
		tokens, err := r.Atoms(constants.FieldSpell)
		if err != nil {
			return fail(constants.FieldSpell, err)
		}
		ps, err := Spell(tokens, opts.DefaultOctave)
		if err != nil {
			return fail(constants.FieldSpell, err)
		}
		return model.Scale{Name: name, Pitches: ps}, nil

	case r.Has(constants.FieldSame):
		target, _ := r.Text(constants.FieldSame)
		ref, ok := t.ByName[target]
		if !ok {
			return fail(constants.FieldSame, fmt.Errorf("%w: %q is not defined before it", model.ErrUnresolvedAlias, target))
		}
		ps := make([]model.Pitch, len(ref.Pitches))
		copy(ps, ref.Pitches)
		return model.Scale{Name: name, Pitches: ps, Same: target}, nil
	}
	return fail(constants.FieldSpell, fmt.Errorf("%w: needs %q or %q", model.ErrMissingField, constants.FieldSpell, constants.FieldSame))
}

// Spell normalizes scale tokens and places them in defaultOctave. The
// vocabulary closes a scale on its tonic; that repeated last note is
// dropped.
func Spell(tokens []string, defaultOctave int) ([]model.Pitch, error) {
	ps, err := pitch.NormalizeAll(tokens)
	if err != nil {
		return nil, err
	}
	if len(ps) > 1 && pitch.Class(ps[0]) == pitch.Class(ps[len(ps)-1]) {
		ps = ps[:len(ps)-1]
	}
	for i, p := range ps {
		if !p.HasOctave() {
			ps[i] = p.WithOctave(defaultOctave)
		}
	}
	return ps, nil
}
