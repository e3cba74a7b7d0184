package catalog

import (
	"strings"
	"testing"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../testdata/small.voc"

func load(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(fixture, DefaultOptions())
	require.NoError(t, err)
	return c
}

func TestEndToEndMinimalVocabulary(t *testing.T) {
	src := `(chord (name maj) (pronounce "major") (key c) (family triad) (spell c e g) (color c e g) (priority c e g) (approach (b d)) (voicings (v1 (type close) (notes c e g) (extension))) (extensions) (scales major) (avoid) (substitute))
(chord (name M) (same maj))`

	c, err := Parse(strings.NewReader(src), "inline", DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"maj"}, c.ChordNames())

	maj, err := c.Chord("maj")
	require.NoError(t, err)
	assert.Equal([]string{"M"}, maj.Same)

	// M is an alias, never an entry of its own
	for _, name := range c.ChordNames() {
		assert.NotEqual("M", name)
	}
	viaAlias, err := c.Chord("M")
	require.NoError(t, err)
	assert.Equal("maj", viaAlias.Name)
}

func TestLoadFixture(t *testing.T) {
	c := load(t)

	assert := assert.New(t)
	assert.Equal([]string{"CM", "C7", "Cm7"}, c.ChordNames())
	assert.Equal([]string{"C major", "C ionian", "C mixolydian", "C dorian"}, c.ScaleNames())
	assert.Equal(map[string]string{"C": "CM", "Cmaj": "CM", "Cdom": "C7", "C-7": "Cm7"}, c.Aliases())
	assert.NotEmpty(c.BuildID())
	assert.Equal(fixture, c.Source().Path)
	assert.False(c.Source().ModTime.IsZero())

	cm, err := c.Chord("CM")
	require.NoError(t, err)
	assert.Equal([]string{"C", "Cmaj"}, cm.Same)

	cm7, err := c.Chord("C-7")
	require.NoError(t, err)
	assert.Equal("Cm7", cm7.Name)
	assert.Equal("C minor seven", cm7.Pronounce)

	ionian, err := c.Scale("C ionian")
	require.NoError(t, err)
	major, err := c.Scale("C major")
	require.NoError(t, err)
	assert.Equal(major.Pitches, ionian.Pitches)
	assert.Len(major.Pitches, 7)
}

func TestChordNamesAreUnique(t *testing.T) {
	c := load(t)
	seen := map[string]bool{}
	for _, name := range c.ChordNames() {
		assert.False(t, seen[name], name)
		seen[name] = true
	}
}

func TestLookupsMiss(t *testing.T) {
	c := load(t)

	_, err := c.Chord("Cmaj13#11")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = c.Voicing("CM", "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = c.Voicing("nope", "left-hand-A")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = c.Scale("C phrygian")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestVoicingLookup(t *testing.T) {
	c := load(t)
	v, err := c.Voicing("Cmaj", "left-hand-B")
	require.NoError(t, err)
	assert.Equal(t, "open", v.Type)
	assert.Equal(t, "C3", v.Notes[0].String())
}

func TestReturnedValuesDoNotAliasCatalog(t *testing.T) {
	c := load(t)

	cm, err := c.Chord("CM")
	require.NoError(t, err)
	cm.Same[0] = "changed"
	cm.Voicings[0].Notes[0] = model.Pitch{Letter: 'A', Octave: 0}

	names := c.ChordNames()
	names[0] = "changed"

	again, err := c.Chord("CM")
	require.NoError(t, err)
	assert.Equal(t, "C", again.Same[0])
	assert.Equal(t, "E3", again.Voicings[0].Notes[0].String())
	assert.Equal(t, "CM", c.ChordNames()[0])
}

func TestSearchByPitchClasses(t *testing.T) {
	c := load(t)

	res := c.Search(model.Notes{60, 64, 67})
	assert.Equal(t, []model.SearchResult{
		{Chord: "CM", Voicing: "left-hand-A", Label: "left-hand-A - closed"},
		{Chord: "CM", Voicing: "left-hand-B", Label: "left-hand-B - open"},
	}, res)

	res = c.Search(model.Notes{48, 58})
	require.Len(t, res, 1)
	assert.Equal(t, "C7", res[0].Chord)

	assert.Empty(t, c.Search(model.Notes{61}))
	assert.Nil(t, c.Search(nil))
}

func TestOrphansAndStats(t *testing.T) {
	c := load(t)

	assert.Equal(t, []Orphan{
		{Chord: "CM", Field: "extensions", Ref: "CM9"},
		{Chord: "CM", Field: "scales", Ref: "C lydian"},
		{Chord: "C7", Field: "substitute", Ref: "Gb7"},
	}, c.Orphans())

	assert.Equal(t, Stats{Chords: 3, Aliases: 4, Voicings: 5, Scales: 4, Orphans: 3}, c.Stats())
}

func TestBuildIsAllOrNothing(t *testing.T) {
	cases := map[string]string{
		"bad pitch":       `(scale (name s) (spell c x))`,
		"forward scale":   `(scale (name a) (same b)) (scale (name b) (spell c d))`,
		"broken alias":    `(chord (name X) (same Y))`,
		"duplicate field": `(chord (name X) (name Y))`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := sexp.ParseString(src)
			require.NoError(t, err)
			c, err := Build(doc, DefaultOptions())
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("(chord (name X)"), "broken.voc", DefaultOptions())
	assert.ErrorIs(t, err, model.ErrSyntax)
	assert.Contains(t, err.Error(), "broken.voc")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("../testdata/does-not-exist.voc", DefaultOptions())
	assert.Error(t, err)
}
