package catalog

import (
	"github.com/jsphweid/voicedex/constants"
	"github.com/jsphweid/voicedex/util"
)

// Orphan is a reference from a chord to a chord or scale that is not in
// the catalog. The vocabulary is known to have some; they are reported,
// not rejected.
type Orphan struct {
	Chord string `json:"chord" yaml:"chord"`
	Field string `json:"field" yaml:"field"`
	Ref   string `json:"ref" yaml:"ref"`
}

type Stats struct {
	Chords   int `json:"chords" yaml:"chords"`
	Aliases  int `json:"aliases" yaml:"aliases"`
	Voicings int `json:"voicings" yaml:"voicings"`
	Scales   int `json:"scales" yaml:"scales"`
	Orphans  int `json:"orphans" yaml:"orphans"`
}

// Orphans lists unresolved extensions, substitute and scales references in
// catalog order.
func (c *Catalog) Orphans() []Orphan {
	var res []Orphan
	for _, name := range c.chordNames {
		ch := c.chords[name]
		for _, ref := range ch.Extensions {
			if _, ok := c.Canonical(ref); !ok {
				res = append(res, Orphan{Chord: name, Field: constants.FieldExtensions, Ref: ref})
			}
		}
		for _, ref := range ch.Substitute {
			if _, ok := c.Canonical(ref); !ok {
				res = append(res, Orphan{Chord: name, Field: constants.FieldSubstitute, Ref: ref})
			}
		}
		for _, ref := range ch.Scales {
			if _, ok := c.scales[ref]; !ok {
				res = append(res, Orphan{Chord: name, Field: constants.FieldScales, Ref: ref})
			}
		}
	}
	return res
}

func (c *Catalog) Stats() Stats {
	voicings := make([]int, 0, len(c.chordNames))
	for _, name := range c.chordNames {
		voicings = append(voicings, len(c.chords[name].Voicings))
	}
	return Stats{
		Chords:   len(c.chordNames),
		Aliases:  len(c.aliases),
		Voicings: int(util.Sum(voicings)),
		Scales:   len(c.scaleNames),
		Orphans:  len(c.Orphans()),
	}
}
