// Package catalog assembles scale and chord tables read from a vocabulary
// file into a read-only Catalog. A Catalog never changes after Build
// returns; reloading means building a new one.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/voicedex/chord"
	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/record"
	"github.com/jsphweid/voicedex/scale"
	"github.com/jsphweid/voicedex/sexp"
	"github.com/jsphweid/voicedex/util"
)

type Options struct {
	Scale scale.Options
	Chord chord.Options
}

func DefaultOptions() Options {
	return Options{Scale: scale.DefaultOptions(), Chord: chord.DefaultOptions()}
}

// Source describes the file a catalog was loaded from.
type Source struct {
	Path    string
	ModTime time.Time
	Size    int64
}

type Catalog struct {
	build    string
	loadedAt time.Time
	source   Source

	chordNames []string
	chords     map[string]model.Chord
	aliases    map[string]string
	scaleNames []string
	scales     map[string]model.Scale

	// voicings by the class key of their notes
	byKey map[string][]model.SearchResult
}

// Build interprets a parsed vocabulary document. Any bad entry fails the
// whole build.
func Build(doc []sexp.Node, opts Options) (*Catalog, error) {
	scaleRecords, err := record.Extract(doc, constants.ScaleTag)
	if err != nil {
		return nil, err
	}
	scales, err := scale.Build(scaleRecords, opts.Scale)
	if err != nil {
		return nil, err
	}

	chordRecords, err := record.Extract(doc, constants.ChordTag)
	if err != nil {
		return nil, err
	}
	chords, err := chord.Build(chordRecords, opts.Chord)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		build:      uuid.New().String(),
		loadedAt:   time.Now(),
		chordNames: chords.Names,
		chords:     chords.ByName,
		aliases:    chords.Aliases,
		scaleNames: scales.Names,
		scales:     scales.ByName,
		byKey:      make(map[string][]model.SearchResult),
	}
	for _, name := range c.chordNames {
		for _, v := range c.chords[name].Voicings {
			key := chord.VoicingKey(v)
			c.byKey[key] = append(c.byKey[key], model.SearchResult{Chord: name, Voicing: v.Name, Label: v.Label()})
		}
	}
	return c, nil
}

// Parse reads a whole vocabulary from r. Single quotes are dropped before
// parsing; the vocabulary uses them as list quotes, which carry nothing
// here.
func Parse(r io.Reader, filename string, opts Options) (*Catalog, error) {
	doc, err := ReadDocument(r, filename)
	if err != nil {
		return nil, err
	}
	c, err := Build(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("building catalog from %s: %w", filename, err)
	}
	return c, nil
}

// ReadDocument reads the top-level forms of a vocabulary without
// interpreting them.
func ReadDocument(r io.Reader, filename string) ([]sexp.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	src = bytes.ReplaceAll(src, []byte("'"), nil)

	doc, err := sexp.Parse(bytes.NewReader(src), filename)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return doc, nil
}

// Load builds a catalog from the file at path.
func Load(path string, opts Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	c, err := Parse(f, path, opts)
	if err != nil {
		return nil, err
	}
	c.source = Source{Path: path, ModTime: info.ModTime(), Size: info.Size()}
	return c, nil
}

// BuildID identifies this particular build of the catalog.
func (c *Catalog) BuildID() string { return c.build }

func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

func (c *Catalog) Source() Source { return c.source }

// ChordNames lists primary chords in file order.
func (c *Catalog) ChordNames() []string {
	return util.Clone(c.chordNames)
}

// Canonical maps a chord or alias name to the primary chord name.
func (c *Catalog) Canonical(name string) (string, bool) {
	if _, ok := c.chords[name]; ok {
		return name, true
	}
	target, ok := c.aliases[name]
	return target, ok
}

// Chord looks up a chord by its name or by one of its aliases.
func (c *Catalog) Chord(name string) (model.Chord, error) {
	canonical, ok := c.Canonical(name)
	if !ok {
		return model.Chord{}, fmt.Errorf("chord %q: %w", name, model.ErrNotFound)
	}
	return cloneChord(c.chords[canonical]), nil
}

func (c *Catalog) Voicing(chordName, voicing string) (model.Voicing, error) {
	ch, err := c.Chord(chordName)
	if err != nil {
		return model.Voicing{}, err
	}
	v, ok := ch.Voicing(voicing)
	if !ok {
		return model.Voicing{}, fmt.Errorf("voicing %q of chord %q: %w", voicing, ch.Name, model.ErrNotFound)
	}
	return v, nil
}

// ScaleNames lists scales in file order.
func (c *Catalog) ScaleNames() []string {
	return util.Clone(c.scaleNames)
}

func (c *Catalog) Scale(name string) (model.Scale, error) {
	s, ok := c.scales[name]
	if !ok {
		return model.Scale{}, fmt.Errorf("scale %q: %w", name, model.ErrNotFound)
	}
	s.Pitches = util.Clone(s.Pitches)
	return s, nil
}

// Aliases maps every alias name to its primary chord.
func (c *Catalog) Aliases() map[string]string {
	res := make(map[string]string, len(c.aliases))
	for k, v := range c.aliases {
		res[k] = v
	}
	return res
}

// Search finds voicings built from exactly the pitch classes in notes,
// in catalog order.
func (c *Catalog) Search(notes model.Notes) []model.SearchResult {
	if len(notes) == 0 {
		return nil
	}
	return util.Clone(c.byKey[chord.ClassKey(notes)])
}

func cloneChord(ch model.Chord) model.Chord {
	ch.Spell = util.Clone(ch.Spell)
	ch.Color = util.Clone(ch.Color)
	ch.Priority = util.Clone(ch.Priority)
	ch.Avoid = util.Clone(ch.Avoid)
	ch.Extensions = util.Clone(ch.Extensions)
	ch.Scales = util.Clone(ch.Scales)
	ch.Substitute = util.Clone(ch.Substitute)
	ch.Same = util.Clone(ch.Same)

	approach := make([][]model.Pitch, len(ch.Approach))
	for i, alt := range ch.Approach {
		approach[i] = util.Clone(alt)
	}
	ch.Approach = approach

	voicings := make([]model.Voicing, len(ch.Voicings))
	for i, v := range ch.Voicings {
		v.Notes = util.Clone(v.Notes)
		v.Extension = util.Clone(v.Extension)
		voicings[i] = v
	}
	ch.Voicings = voicings
	return ch
}
