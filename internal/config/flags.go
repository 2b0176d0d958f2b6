package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAddr   = flag.String("addr", "", "HTTP listen address")
	flagCamera = flag.Int("camera", -1, "Camera device ID")
	flagDB     = flag.String("db", "", "Path to SQLite database")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagCamera >= 0 {
		cfg.Camera.DeviceID = *flagCamera
	}
	if *flagDB != "" {
		cfg.Storage.DBPath = *flagDB
	}
}
