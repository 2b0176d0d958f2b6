package main

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/app"
	"github.com/ayusman/gesturetree/internal/config"
	"github.com/ayusman/gesturetree/internal/interaction"
	"github.com/ayusman/gesturetree/internal/logger"
	"github.com/ayusman/gesturetree/internal/server"
	"github.com/ayusman/gesturetree/internal/store"
	"github.com/ayusman/gesturetree/internal/tray"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "gesturetree.db")
	}
	st, err := store.New(dbPath)
	if err != nil {
		logger.Error("failed to initialize store", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:        st,
		CameraID:     cfg.Camera.DeviceID,
		Mirror:       cfg.Camera.Mirror,
		MotionThresh: cfg.Detection.MotionThreshold,
		IdleFPS:      cfg.Camera.IdleFPS,
		ActiveFPS:    cfg.Camera.ActiveFPS,
		Interaction: interaction.Config{
			FlickThreshold: cfg.Interaction.FlickThreshold,
			CursorBlend:    cfg.Interaction.CursorBlend,
		},
	})

	if err := a.LoadPhotos(); err != nil {
		logger.Error("failed to load photos", zap.Error(err))
		os.Exit(1)
	}

	enabled, err := st.Settings().GetBool(store.SettingDetectionEnabled, true)
	if err != nil {
		logger.Warn("failed to read detection setting", zap.Error(err))
		enabled = true
	}
	a.SetEnabled(enabled)

	tr := tray.New(enabled)
	scene := server.NewSceneHandler()

	a.OnOutput(func(out interaction.Output) {
		scene.Broadcast(out)
		tr.SetStatus(out.Status)
	})

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		logger.Info("serving static files", zap.String("dir", staticDir))
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		Camera:    a.Camera(),
		Scene:     scene,
		OnUpload:  a.AddPhoto,
		OnDelete:  a.RemovePhoto,
	})

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			logger.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	if err := a.Start(); err != nil {
		logger.Error("failed to start pipeline", zap.Error(err))
		os.Exit(1)
	}

	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := st.Settings().SetBool(store.SettingDetectionEnabled, enabled); err != nil {
			logger.Warn("failed to persist detection setting", zap.Error(err))
		}
	})
	tr.OnOpen(func() {
		url := "http://localhost" + cfg.Server.Addr
		if err := exec.Command("open", url).Start(); err != nil {
			logger.Warn("failed to open browser", zap.Error(err))
		}
	})
	tr.OnQuit(func() {
		a.Stop()
	})

	// Blocks until Quit is picked from the tray menu.
	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.gesturetree/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".gesturetree", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
