package config

import (
	"fmt"
	"strings"
)

// Validate checks ranges cleanenv cannot express. Load calls it.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Vocab.Path) == "" {
		return fmt.Errorf("vocab.path must not be empty")
	}
	for name, oct := range map[string]int{
		"default_scale_octave": c.Vocab.DefaultScaleOctave,
		"default_chord_octave": c.Vocab.DefaultChordOctave,
	} {
		if oct < 0 || oct > 9 {
			return fmt.Errorf("vocab.%s must be within 0..9 (got %d)", name, oct)
		}
	}
	if c.Vocab.MaxAliasDepth < 1 {
		return fmt.Errorf("vocab.max_alias_depth must be >= 1 (got %d)", c.Vocab.MaxAliasDepth)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}

	// checked even when disabled since serve --watch turns watching on
	if c.Watch.Interval <= 0 || c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.interval must be > 0 and watch.debounce >= 0")
	}

	if err := c.Midi.validate(); err != nil {
		return fmt.Errorf("midi: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (m *MidiConfig) validate() error {
	if m.Channel < 0 || m.Channel > 15 {
		return fmt.Errorf("channel must be within 0..15 (got %d)", m.Channel)
	}
	if m.Velocity < 1 || m.Velocity > 127 {
		return fmt.Errorf("velocity must be within 1..127 (got %d)", m.Velocity)
	}
	if m.TicksPerQuarter < 1 || m.TicksPerQuarter > 0x7FFF {
		return fmt.Errorf("ticks_per_quarter must be within 1..32767 (got %d)", m.TicksPerQuarter)
	}
	if m.BPM <= 0 {
		return fmt.Errorf("bpm must be > 0 (got %v)", m.BPM)
	}
	if m.DurationTicks < 1 {
		return fmt.Errorf("duration_ticks must be > 0 (got %d)", m.DurationTicks)
	}
	if m.ArpeggioTicks < 0 {
		return fmt.Errorf("arpeggio_ticks must be >= 0 (got %d)", m.ArpeggioTicks)
	}
	return nil
}
