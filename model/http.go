package model

type SearchResult struct {
	Chord   string `json:"chord" yaml:"chord"`
	Voicing string `json:"voicing" yaml:"voicing"`
	Label   string `json:"label" yaml:"label"`
}

type SearchRequestBody struct {
	Chords []Notes `json:"chords" yaml:"chords"`
}

type SearchResponse struct {
	Key     string         `json:"key" yaml:"key"`
	Results []SearchResult `json:"results" yaml:"results"`
}

type ChordSummary struct {
	Name      string   `json:"name" yaml:"name"`
	Pronounce string   `json:"pronounce" yaml:"pronounce"`
	Family    string   `json:"family" yaml:"family"`
	Voicings  []string `json:"voicings" yaml:"voicings"`
	Same      []string `json:"same" yaml:"same"`
}

type VoicingResponse struct {
	Chord     string  `json:"chord" yaml:"chord"`
	Voicing   Voicing `json:"voicing" yaml:"voicing"`
	Label     string  `json:"label" yaml:"label"`
	Transpose int     `json:"transpose" yaml:"transpose"`
	Midi      []int   `json:"midi" yaml:"midi"`

	// RangeStart/RangeEnd bound the keyboard that should be drawn.
	RangeStart Pitch `json:"range_start" yaml:"range_start"`
	RangeEnd   Pitch `json:"range_end" yaml:"range_end"`
}

type HealthResponse struct {
	Status   string `json:"status" yaml:"status"`
	Build    string `json:"build" yaml:"build"`
	Chords   int    `json:"chords" yaml:"chords"`
	Scales   int    `json:"scales" yaml:"scales"`
	LoadedAt string `json:"loaded_at" yaml:"loaded_at"`
}

type ErrorResponse struct {
	Error string `json:"detail" yaml:"detail"`
}

// CatalogExport is a full dump of a catalog.
type CatalogExport struct {
	Build    string            `json:"build" yaml:"build"`
	Source   string            `json:"source" yaml:"source"`
	LoadedAt string            `json:"loaded_at" yaml:"loaded_at"`
	Chords   []Chord           `json:"chords" yaml:"chords"`
	Scales   []Scale           `json:"scales" yaml:"scales"`
	Aliases  map[string]string `json:"aliases" yaml:"aliases"`
}
