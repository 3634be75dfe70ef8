package config

import (
	"log"
	"os"
	"path/filepath"
)

// Config holds every runtime setting, resolved once at startup and handed to
// the pieces that need it. Directory locations are plain env vars; there is no
// platform sniffing at runtime.
type Config struct {
	ServerPort    string
	GinMode       string
	UploadBaseDir string
	ExportDir     string
	DataFile      string
	AdminDir      string

	// AdminNotifyEmail, when set together with the SMTP settings, receives a
	// short notification mail for every new submission.
	AdminNotifyEmail string
}

// Load resolves the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		UploadBaseDir:    getEnv("UPLOAD_BASE_DIR", "uploads"),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),
		DataFile:         getEnv("DATA_FILE", "submissions.json"),
		AdminDir:         getEnv("ADMIN_DIR", "admin"),
		AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),
	}

	log.Printf("Config loaded - port: %s, uploads: %s, data file: %s",
		cfg.ServerPort, cfg.UploadBaseDir, cfg.DataFile)

	return cfg
}

// ImagesDir is where uploaded images are stored.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.UploadBaseDir, "images")
}

// VideosDir is where uploaded videos are stored.
func (c *Config) VideosDir() string {
	return filepath.Join(c.UploadBaseDir, "videos")
}

// EnsureDirs creates the upload and export directories if they do not exist.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.UploadBaseDir, c.ImagesDir(), c.VideosDir(), c.ExportDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
