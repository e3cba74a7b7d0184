package chord

import (
	"fmt"

	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/pitch"
	"github.com/jsphweid/voicedex/record"
	"github.com/jsphweid/voicedex/sexp"
)

// Table is the result of reading every chord entry: primary chords in
// file order, and each alias mapped to the primary chord it ends at.
type Table struct {
	Names   []string
	ByName  map[string]model.Chord
	Aliases map[string]string
}

type Options struct {
	// Longest alias chain followed, counted in hops. X -> Y -> Z is 2.
	MaxAliasDepth int
}

func DefaultOptions() Options {
	return Options{MaxAliasDepth: constants.DefaultMaxAliasDepth}
}

type aliasPair struct {
	alias, target string
}

// Build reads chord records in two passes. The first creates every primary
// chord and remembers alias entries, the second walks each alias to its
// primary chord and adds the alias to that chord's Same list.
func Build(records []record.Record, opts Options) (Table, error) {
	t := Table{
		ByName:  make(map[string]model.Chord, len(records)),
		Aliases: make(map[string]string),
	}
	targets := make(map[string]string)
	var pairs []aliasPair

	for _, r := range records {
		name, err := r.Text(constants.FieldName)
		if err != nil {
			return Table{}, &model.RecordError{Tag: constants.ChordTag, Field: constants.FieldName, Err: err}
		}

		if r.Has(constants.FieldSame) {
			target, _ := r.Text(constants.FieldSame)
			if _, dup := targets[name]; dup {
				return Table{}, &model.RecordError{Tag: constants.ChordTag, Name: name, Err: model.ErrDuplicateEntry}
			}
			targets[name] = target
			pairs = append(pairs, aliasPair{alias: name, target: target})
			continue
		}

		c, err := parseChord(name, r)
		if err != nil {
			return Table{}, err
		}
		if _, dup := t.ByName[name]; dup {
			return Table{}, &model.RecordError{Tag: constants.ChordTag, Name: name, Err: model.ErrDuplicateEntry}
		}
		t.ByName[name] = c
		t.Names = append(t.Names, name)
	}

	for _, p := range pairs {
		if _, clash := t.ByName[p.alias]; clash {
			return Table{}, &model.RecordError{
				Tag:  constants.ChordTag,
				Name: p.alias,
				Err:  fmt.Errorf("%w: name is used by a chord and an alias", model.ErrDuplicateEntry),
			}
		}
		canonical, err := Resolve(p.alias, targets, t.ByName, opts.MaxAliasDepth)
		if err != nil {
			return Table{}, &model.RecordError{Tag: constants.ChordTag, Name: p.alias, Field: constants.FieldSame, Err: err}
		}
		c := t.ByName[canonical]
		c.Same = append(c.Same, p.alias)
		t.ByName[canonical] = c
		t.Aliases[p.alias] = canonical
	}

	return t, nil
}

// Resolve follows alias from targets until it reaches a chord in chords,
// taking at most maxDepth hops.
func Resolve(alias string, targets map[string]string, chords map[string]model.Chord, maxDepth int) (string, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	seen := map[string]bool{alias: true}
	target, ok := targets[alias]
	if !ok {
		return "", fmt.Errorf("%w: %q is not an alias", model.ErrBrokenAliasChain, alias)
	}
	for hops := 1; ; hops++ {
		if _, ok := chords[target]; ok {
			return target, nil
		}
		next, ok := targets[target]
		switch {
		case !ok:
			return "", fmt.Errorf("%w: %q points at unknown chord %q", model.ErrBrokenAliasChain, alias, target)
		case seen[target]:
			return "", fmt.Errorf("%w: %q is part of an alias cycle", model.ErrBrokenAliasChain, alias)
		case hops >= maxDepth:
			return "", fmt.Errorf("%w: %q needs more than %d hops", model.ErrBrokenAliasChain, alias, maxDepth)
		}
		seen[target] = true
		target = next
	}
}

func parseChord(name string, r record.Record) (model.Chord, error) {
	c := model.Chord{Name: name, Same: []string{}}
	field := ""
	fail := func(err error) (model.Chord, error) {
		return model.Chord{}, &model.RecordError{Tag: constants.ChordTag, Name: name, Field: field, Err: err}
	}

	var err error
	field = constants.FieldPronounce
	if c.Pronounce, err = r.Text(field); err != nil {
		return fail(err)
	}
	field = constants.FieldFamily
	if c.Family, err = r.Text(field); err != nil {
		return fail(err)
	}
	field = constants.FieldKey
	if c.Key, err = singlePitch(r, field); err != nil {
		return fail(err)
	}

	for _, f := range []struct {
		name string
		dst  *[]model.Pitch
	}{
		{constants.FieldSpell, &c.Spell},
		{constants.FieldColor, &c.Color},
		{constants.FieldPriority, &c.Priority},
		{constants.FieldAvoid, &c.Avoid},
	} {
		field = f.name
		if *f.dst, err = pitches(r, field); err != nil {
			return fail(err)
		}
	}

	field = constants.FieldApproach
	if c.Approach, err = approaches(r, field); err != nil {
		return fail(err)
	}
	field = constants.FieldVoicings
	if c.Voicings, err = voicings(r, field); err != nil {
		return fail(err)
	}
	field = constants.FieldExtensions
	if c.Extensions, err = r.Atoms(field); err != nil {
		return fail(err)
	}
	field = constants.FieldSubstitute
	if c.Substitute, err = r.Atoms(field); err != nil {
		return fail(err)
	}
	field = constants.FieldScales
	if c.Scales, err = scaleNames(r, field); err != nil {
		return fail(err)
	}
	return c, nil
}

func singlePitch(r record.Record, field string) (model.Pitch, error) {
	tokens, err := r.Atoms(field)
	if err != nil {
		return model.Pitch{}, err
	}
	if len(tokens) != 1 {
		return model.Pitch{}, fmt.Errorf("%w: want one note, got %d", model.ErrMalformedPitchToken, len(tokens))
	}
	return pitch.Normalize(tokens[0])
}

func pitches(r record.Record, field string) ([]model.Pitch, error) {
	tokens, err := r.Atoms(field)
	if err != nil {
		return nil, err
	}
	return pitch.NormalizeAll(tokens)
}

// approaches reads a list of alternatives, e.g. (approach (c db) (e f)).
func approaches(r record.Record, field string) ([][]model.Pitch, error) {
	raw, err := r.Require(field)
	if err != nil {
		return nil, err
	}
	res := make([][]model.Pitch, 0, len(raw))
	for _, alt := range raw {
		if !alt.IsList() {
			return nil, fmt.Errorf("approach option in the entry on line %d is not a list", alt.Line)
		}
		tokens, err := record.Atoms(alt.Children)
		if err != nil {
			return nil, err
		}
		ps, err := pitch.NormalizeAll(tokens)
		if err != nil {
			return nil, err
		}
		res = append(res, ps)
	}
	return res, nil
}

// voicings reads (voicings (name (type ...) (notes ...) (extension ...)) ...).
func voicings(r record.Record, field string) ([]model.Voicing, error) {
	raw, err := r.Require(field)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no voicings", model.ErrMissingField)
	}
	res := make([]model.Voicing, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, node := range raw {
		v, err := parseVoicing(node)
		if err != nil {
			return nil, err
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: voicing %q", model.ErrDuplicateEntry, v.Name)
		}
		seen[v.Name] = true
		res = append(res, v)
	}
	return res, nil
}

func parseVoicing(node sexp.Node) (model.Voicing, error) {
	name, ok := node.Head()
	if !ok {
		return model.Voicing{}, fmt.Errorf("voicing in the entry on line %d has no name", node.Line)
	}
	vr, err := record.FromList(name, node.Line, node.Tail())
	if err != nil {
		return model.Voicing{}, fmt.Errorf("voicing %q: %w", name, err)
	}

	v := model.Voicing{Name: name}
	if v.Type, err = vr.Text(constants.FieldType); err != nil {
		return model.Voicing{}, fmt.Errorf("voicing %q: %w", name, err)
	}
	if v.Notes, err = pitches(vr, constants.FieldNotes); err != nil {
		return model.Voicing{}, fmt.Errorf("voicing %q: %w", name, err)
	}
	if v.Extension, err = pitches(vr, constants.FieldExtension); err != nil {
		return model.Voicing{}, fmt.Errorf("voicing %q: %w", name, err)
	}
	return v, nil
}

// scaleNames accepts (scales (C major) (C lydian dominant)) as well as bare
// single-word names.
func scaleNames(r record.Record, field string) ([]string, error) {
	raw, err := r.Require(field)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(raw))
	for _, n := range raw {
		if n.IsList() {
			res = append(res, record.Flatten(n.Children))
		} else {
			res = append(res, n.Text)
		}
	}
	return res, nil
}
