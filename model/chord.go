package model

type Voicing struct {
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type" yaml:"type"`
	Notes     []Pitch `json:"notes" yaml:"notes"`
	Extension []Pitch `json:"extension" yaml:"extension"`
}

// Label is how a voicing is offered for selection, e.g. "left-hand-A - closed".
func (v Voicing) Label() string {
	return v.Name + " - " + v.Type
}

type Chord struct {
	Name       string    `json:"name" yaml:"name"`
	Pronounce  string    `json:"pronounce" yaml:"pronounce"`
	Key        Pitch     `json:"key" yaml:"key"`
	Family     string    `json:"family" yaml:"family"`
	Spell      []Pitch   `json:"spell" yaml:"spell"`
	Color      []Pitch   `json:"color" yaml:"color"`
	Priority   []Pitch   `json:"priority" yaml:"priority"`
	Approach   [][]Pitch `json:"approach" yaml:"approach"`
	Voicings   []Voicing `json:"voicings" yaml:"voicings"`
	Extensions []string  `json:"extensions" yaml:"extensions"`
	Scales     []string  `json:"scales" yaml:"scales"`
	Avoid      []Pitch   `json:"avoid" yaml:"avoid"`
	Substitute []string  `json:"substitute" yaml:"substitute"`

	// Names of alias entries that point at this chord, filled in after all
	// records have been read.
	Same []string `json:"same" yaml:"same"`
}

// Voicing returns the voicing called name.
func (c *Chord) Voicing(name string) (Voicing, bool) {
	for _, v := range c.Voicings {
		if v.Name == name {
			return v, true
		}
	}
	return Voicing{}, false
}

type Scale struct {
	Name    string  `json:"name" yaml:"name"`
	Pitches []Pitch `json:"pitches" yaml:"pitches"`

	// NOTE: set when the entry was declared as "same as" another scale
	Same string `json:"same,omitempty" yaml:"same,omitempty"`
}
