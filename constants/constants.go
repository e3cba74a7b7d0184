package constants

// top-level tags in a vocabulary file
const (
	ChordTag = "chord"
	ScaleTag = "scale"
)

// field names shared by chord and scale entries
const (
	FieldName  = "name"
	FieldSame  = "same"
	FieldSpell = "spell"
)

// chord fields
const (
	FieldPronounce  = "pronounce"
	FieldKey        = "key"
	FieldFamily     = "family"
	FieldColor      = "color"
	FieldPriority   = "priority"
	FieldApproach   = "approach"
	FieldVoicings   = "voicings"
	FieldExtensions = "extensions"
	FieldScales     = "scales"
	FieldAvoid      = "avoid"
	FieldSubstitute = "substitute"
)

// voicing fields
const (
	FieldType      = "type"
	FieldNotes     = "notes"
	FieldExtension = "extension"
)

const DefaultVocabPath = "./data/My.voc"

// Scale spellings in the vocabulary carry no register; they are placed in
// this octave.
const DefaultScaleOctave = 4

// Octave used when a chord or voicing pitch without register markers has
// to become a MIDI note.
const DefaultChordOctave = 4

// X -> Y -> Z is two hops.
const DefaultMaxAliasDepth = 2

// midi export defaults
const (
	DefaultVelocity        = 100
	DefaultTicksPerQuarter = 480
	DefaultDurationTicks   = 4 * DefaultTicksPerQuarter
)
