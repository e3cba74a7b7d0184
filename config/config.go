package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/chord"
	"github.com/jsphweid/voicedex/midi"
	"github.com/jsphweid/voicedex/scale"
)

// Config is the root application configuration.
type Config struct {
	Vocab  VocabConfig  `yaml:"vocab"`
	Server ServerConfig `yaml:"server"`
	CORS   CORSConfig   `yaml:"cors"`
	Watch  WatchConfig  `yaml:"watch"`
	Midi   MidiConfig   `yaml:"midi"`
	Log    LogConfig    `yaml:"log"`
	Sentry SentryConfig `yaml:"sentry"`
}

// VocabConfig says where the vocabulary lives and how it is interpreted.
type VocabConfig struct {
	Path               string `yaml:"path"                 env:"VOCAB_PATH"                 env-default:"./data/My.voc"`
	DefaultScaleOctave int    `yaml:"default_scale_octave" env:"VOCAB_DEFAULT_SCALE_OCTAVE" env-default:"4"`
	DefaultChordOctave int    `yaml:"default_chord_octave" env:"VOCAB_DEFAULT_CHORD_OCTAVE" env-default:"4"`
	MaxAliasDepth      int    `yaml:"max_alias_depth"      env:"VOCAB_MAX_ALIAS_DEPTH"      env-default:"2"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// WatchConfig controls reloading the vocabulary while serving.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"WATCH_ENABLED"  env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"WATCH_INTERVAL" env-default:"1s"`
	Debounce time.Duration `yaml:"debounce" env:"WATCH_DEBOUNCE" env-default:"500ms"`
}

type MidiConfig struct {
	Channel         int     `yaml:"channel"           env:"MIDI_CHANNEL"           env-default:"0"`
	Velocity        int     `yaml:"velocity"          env:"MIDI_VELOCITY"          env-default:"100"`
	TicksPerQuarter int     `yaml:"ticks_per_quarter" env:"MIDI_TICKS_PER_QUARTER" env-default:"480"`
	BPM             float64 `yaml:"bpm"               env:"MIDI_BPM"               env-default:"120"`
	DurationTicks   int     `yaml:"duration_ticks"    env:"MIDI_DURATION_TICKS"    env-default:"1920"`
	ArpeggioTicks   int     `yaml:"arpeggio_ticks"    env:"MIDI_ARPEGGIO_TICKS"    env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `yaml:"dsn"         env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT" env-default:"development"`
}

// CatalogOptions returns the build options described by the vocab section.
func (c *Config) CatalogOptions() catalog.Options {
	return catalog.Options{
		Scale: scale.Options{DefaultOctave: c.Vocab.DefaultScaleOctave},
		Chord: chord.Options{MaxAliasDepth: c.Vocab.MaxAliasDepth},
	}
}

func (c *Config) MidiOptions() midi.Options {
	return midi.Options{
		Channel:         uint8(c.Midi.Channel),
		Velocity:        uint8(c.Midi.Velocity),
		TicksPerQuarter: uint16(c.Midi.TicksPerQuarter),
		BPM:             c.Midi.BPM,
		DurationTicks:   uint32(c.Midi.DurationTicks),
		ArpeggioTicks:   uint32(c.Midi.ArpeggioTicks),
	}
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Origins splits the comma separated origin list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			res = append(res, p)
		}
	}
	return res
}
