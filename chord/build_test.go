package chord

import (
	"testing"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/record"
	"github.com/jsphweid/voicedex/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const majTriad = `(chord (name maj) (pronounce "major") (key c) (family triad) (spell c e g) (color c e g) (priority c e g) (approach (b d)) (voicings (v1 (type close) (notes c e g) (extension))) (extensions) (scales major) (avoid) (substitute))`

func records(t *testing.T, src string) []record.Record {
	t.Helper()
	doc, err := sexp.ParseString(src)
	require.NoError(t, err)
	recs, err := record.Extract(doc, "chord")
	require.NoError(t, err)
	return recs
}

func primary(name string) string {
	return `(chord (name ` + name + `) (pronounce ` + name + `) (key c) (family major) (spell c e g) (color e) (priority e c g) (approach) (voicings (v1 (type close) (notes c e g) (extension))) (extensions) (scales) (avoid) (substitute))`
}

func TestBuildMinimalChordWithAlias(t *testing.T) {
	table, err := Build(records(t, majTriad+"\n(chord (name M) (same maj))"), DefaultOptions())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"maj"}, table.Names)
	_, isEntry := table.ByName["M"]
	assert.False(isEntry)

	c := table.ByName["maj"]
	assert.Equal([]string{"M"}, c.Same)
	assert.Equal("major", c.Pronounce)
	assert.Equal("triad", c.Family)
	assert.Equal(model.Pitch{Letter: 'C', Octave: model.OctaveUnset}, c.Key)
	assert.Len(c.Spell, 3)
	require.Len(t, c.Approach, 1)
	assert.Equal("B", c.Approach[0][0].String())
	assert.Equal("D", c.Approach[0][1].String())
	require.Len(t, c.Voicings, 1)
	assert.Equal("v1", c.Voicings[0].Name)
	assert.Equal("close", c.Voicings[0].Type)
	assert.Empty(c.Voicings[0].Extension)
	assert.Equal([]string{"major"}, c.Scales)
	assert.Empty(c.Extensions)
	assert.Empty(c.Avoid)
	assert.Empty(c.Substitute)
	assert.Equal(map[string]string{"M": "maj"}, table.Aliases)
}

func TestBuildParsesEveryChordField(t *testing.T) {
	src := `(chord (name C7b9) (pronounce C seven flat nine) (key c) (family dominant)
  (spell c e g bb db+) (color e bb db+) (priority bb e db+ g c)
  (approach (c db b) (e f eb))
  (voicings
    (left-hand-A (type left) (notes e- bb- db) (extension g))
    (left-hand-B (type left) (notes bb-- db- e-) (extension a+)))
  (extensions C7b9#11 C13b9)
  (scales (C half-whole diminished) (F harmonic minor))
  (avoid f)
  (substitute Gb7 E7))`

	table, err := Build(records(t, src), DefaultOptions())
	require.NoError(t, err)
	c := table.ByName["C7b9"]

	assert := assert.New(t)
	assert.Equal("C seven flat nine", c.Pronounce)
	assert.Equal("Db5", c.Spell[4].String())
	assert.Len(c.Approach, 2)
	assert.Len(c.Approach[1], 3)
	assert.Equal("Eb", c.Approach[1][2].String())
	require.Len(t, c.Voicings, 2)
	assert.Equal("E3", c.Voicings[0].Notes[0].String())
	assert.Equal("Bb2", c.Voicings[1].Notes[0].String())
	assert.Equal("A5", c.Voicings[1].Extension[0].String())
	assert.Equal([]string{"C7b9#11", "C13b9"}, c.Extensions)
	assert.Equal([]string{"C half-whole diminished", "F harmonic minor"}, c.Scales)
	assert.Equal("F", c.Avoid[0].String())
	assert.Equal([]string{"Gb7", "E7"}, c.Substitute)
	assert.Equal("left-hand-B - left", c.Voicings[1].Label())
}

func TestBuildAliasOfAlias(t *testing.T) {
	src := primary("Z") + "\n(chord (name X) (same Y))\n(chord (name Y) (same Z))"

	table, err := Build(records(t, src), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, table.ByName["Z"].Same)
	assert.Equal(t, "Z", table.Aliases["X"])
	assert.Equal(t, "Z", table.Aliases["Y"])

	_, err = Build(records(t, src), Options{MaxAliasDepth: 1})
	assert.ErrorIs(t, err, model.ErrBrokenAliasChain)
}

func TestBuildEveryAliasLandsOnOnePrimaryChord(t *testing.T) {
	src := primary("C") + primary("Cm") +
		`(chord (name CM) (same C)) (chord (name Cmaj) (same CM)) (chord (name Cmin) (same Cm)) (chord (name C-) (same Cmin))`
	table, err := Build(records(t, src), DefaultOptions())
	require.NoError(t, err)

	owners := map[string][]string{}
	for _, name := range table.Names {
		for _, alias := range table.ByName[name].Same {
			owners[alias] = append(owners[alias], name)
		}
	}
	for alias := range table.Aliases {
		assert.Len(t, owners[alias], 1, alias)
		_, isAlias := table.Aliases[owners[alias][0]]
		assert.False(t, isAlias)
	}
	assert.Len(t, owners, 4)
}

func TestBuildBrokenAliases(t *testing.T) {
	cases := map[string]string{
		"dangling":   primary("C") + `(chord (name X) (same nowhere))`,
		"cycle":      `(chord (name X) (same Y)) (chord (name Y) (same X))`,
		"self":       `(chord (name X) (same X))`,
		"three hops": primary("C") + `(chord (name A) (same B)) (chord (name B) (same D)) (chord (name D) (same C))`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(records(t, src), DefaultOptions())
			assert.ErrorIs(t, err, model.ErrBrokenAliasChain)
		})
	}
}

func TestBuildDeeperChainsWithLargerDepth(t *testing.T) {
	src := primary("C") + `(chord (name A) (same B)) (chord (name B) (same D)) (chord (name D) (same C))`
	table, err := Build(records(t, src), Options{MaxAliasDepth: 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "D"}, table.ByName["C"].Same)
}

func TestBuildFailures(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"missing pronounce", `(chord (name C) (key c))`, model.ErrMissingField},
		{"missing name", `(chord (same C))`, model.ErrMissingField},
		{"no voicings", `(chord (name C) (pronounce C) (key c) (family major) (spell c e g) (color e) (priority e) (approach) (voicings) (extensions) (scales) (avoid) (substitute))`, model.ErrMissingField},
		{"voicing without notes", `(chord (name C) (pronounce C) (key c) (family major) (spell c e g) (color e) (priority e) (approach) (voicings (v1 (type close) (extension))) (extensions) (scales) (avoid) (substitute))`, model.ErrMissingField},
		{"bad key", `(chord (name C) (pronounce C) (key h) (family major) (spell c e g) (color e) (priority e) (approach) (voicings (v1 (type close) (notes c) (extension))) (extensions) (scales) (avoid) (substitute))`, model.ErrMalformedPitchToken},
		{"two keys", `(chord (name C) (pronounce C) (key c d) (family major) (spell c e g) (color e) (priority e) (approach) (voicings (v1 (type close) (notes c) (extension))) (extensions) (scales) (avoid) (substitute))`, model.ErrMalformedPitchToken},
		{"duplicate chord", primary("C") + primary("C"), model.ErrDuplicateEntry},
		{"alias shadows chord", primary("C") + primary("D") + `(chord (name D) (same C))`, model.ErrDuplicateEntry},
		{"duplicate alias", primary("C") + `(chord (name X) (same C)) (chord (name X) (same C))`, model.ErrDuplicateEntry},
		{"duplicate voicing", `(chord (name C) (pronounce C) (key c) (family major) (spell c e g) (color e) (priority e) (approach) (voicings (v1 (type a) (notes c) (extension)) (v1 (type b) (notes e) (extension))) (extensions) (scales) (avoid) (substitute))`, model.ErrDuplicateEntry},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(records(t, c.src), DefaultOptions())
			assert.ErrorIs(t, err, c.want)

			var re *model.RecordError
			assert.ErrorAs(t, err, &re)
		})
	}
}
