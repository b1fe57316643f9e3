// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FovY       float32 `yaml:"fov_y"`
}

// SceneConfig holds scene traversal tuning.
type SceneConfig struct {
	// LODBias shifts detail selection for every node; positive values pick
	// coarser levels sooner.
	LODBias float32 `yaml:"lod_bias"`
	// MipBias does the same for mipmap selection.
	MipBias float32 `yaml:"mip_bias"`
	// AutoClip lets drawn nodes extend the renderer's depth clip range.
	AutoClip bool `yaml:"auto_clip"`
	// CameraDistance is the orbit camera's starting distance.
	CameraDistance float32 `yaml:"camera_distance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FovY:       45,
		},
		Scene: SceneConfig{
			LODBias:        0,
			MipBias:        0,
			AutoClip:       true,
			CameraDistance: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
