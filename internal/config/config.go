// Package config handles daemon configuration loading and management.
package config

// Config holds all GestureTree settings.
type Config struct {
	Camera      CameraConfig      `yaml:"camera"`
	Detection   DetectionConfig   `yaml:"detection"`
	Interaction InteractionConfig `yaml:"interaction"`
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CameraConfig holds camera capture settings.
type CameraConfig struct {
	DeviceID  int  `yaml:"device_id"`
	Mirror    bool `yaml:"mirror"` // selfie-style horizontal flip
	IdleFPS   int  `yaml:"idle_fps"`
	ActiveFPS int  `yaml:"active_fps"`
}

// DetectionConfig holds hand detection settings.
type DetectionConfig struct {
	MotionThreshold float64 `yaml:"motion_threshold"` // % pixels changed to wake up
	MinConfidence   float64 `yaml:"min_confidence"`
}

// InteractionConfig holds gesture interaction tuning.
// These are empirically calibrated values, not derived ones.
type InteractionConfig struct {
	FlickThreshold float64 `yaml:"flick_threshold"` // pinch-distance growth per tick that counts as a flick
	CursorBlend    float64 `yaml:"cursor_blend"`    // per-tick cursor smoothing factor (0,1]
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // empty means ~/.gesturetree/gesturetree.db
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			DeviceID:  0,
			Mirror:    true,
			IdleFPS:   5,
			ActiveFPS: 30,
		},
		Detection: DetectionConfig{
			MotionThreshold: 1.0,
			MinConfidence:   0.5,
		},
		Interaction: InteractionConfig{
			FlickThreshold: 0.02,
			CursorBlend:    0.35,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			StaticDir: "",
		},
		Storage: StorageConfig{
			DBPath: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
