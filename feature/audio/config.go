package audio

// Config holds the audio configuration.
type Config struct {
	Device        string  `mapstructure:"device" default:"null"`
	SampleRate    int     `mapstructure:"sample_rate" default:"44100"`
	BufferMillis  int     `mapstructure:"buffer_millis" default:"100"`
	MasterVolume  float64 `mapstructure:"master_volume" default:"1"`
	MusicVolume   float64 `mapstructure:"music_volume" default:"1"`
	EffectsVolume float64 `mapstructure:"effects_volume" default:"1"`
}

// Volumes returns the mixer volumes of the configuration.
func (c Config) Volumes() Volumes {
	return Volumes{
		Master:  c.MasterVolume,
		Music:   c.MusicVolume,
		Effects: c.EffectsVolume,
	}
}
