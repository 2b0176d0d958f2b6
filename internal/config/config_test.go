package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Camera.DeviceID != 0 {
		t.Errorf("expected camera device 0, got %d", cfg.Camera.DeviceID)
	}
	if !cfg.Camera.Mirror {
		t.Error("expected mirror to be true by default")
	}
	if cfg.Camera.IdleFPS != 5 {
		t.Errorf("expected idle fps 5, got %d", cfg.Camera.IdleFPS)
	}
	if cfg.Camera.ActiveFPS != 30 {
		t.Errorf("expected active fps 30, got %d", cfg.Camera.ActiveFPS)
	}

	if cfg.Detection.MotionThreshold != 1.0 {
		t.Errorf("expected motion threshold 1.0, got %f", cfg.Detection.MotionThreshold)
	}

	if cfg.Interaction.FlickThreshold != 0.02 {
		t.Errorf("expected flick threshold 0.02, got %f", cfg.Interaction.FlickThreshold)
	}
	if cfg.Interaction.CursorBlend != 0.35 {
		t.Errorf("expected cursor blend 0.35, got %f", cfg.Interaction.CursorBlend)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
camera:
  device_id: 2
  mirror: false
  active_fps: 24

interaction:
  flick_threshold: 0.03

server:
  addr: ":9090"

logging:
  level: debug
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}

	if cfg.Camera.DeviceID != 2 {
		t.Errorf("expected camera device 2, got %d", cfg.Camera.DeviceID)
	}
	if cfg.Camera.Mirror {
		t.Error("expected mirror false after load")
	}
	if cfg.Camera.ActiveFPS != 24 {
		t.Errorf("expected active fps 24, got %d", cfg.Camera.ActiveFPS)
	}
	if cfg.Interaction.FlickThreshold != 0.03 {
		t.Errorf("expected flick threshold 0.03, got %f", cfg.Interaction.FlickThreshold)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Values absent from the file keep their defaults.
	if cfg.Camera.IdleFPS != 5 {
		t.Errorf("expected idle fps to keep default 5, got %d", cfg.Camera.IdleFPS)
	}
	if cfg.Interaction.CursorBlend != 0.35 {
		t.Errorf("expected cursor blend to keep default 0.35, got %f", cfg.Interaction.CursorBlend)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
