package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".qi"
	envPrefix  = "QI"
)

const (
	DocumentsPathKey      = "documents.path"
	AuditPathKey          = "audit.path"
	EvidencePathKey       = "evidence.path"
	EvidenceSharedPathKey = "evidence.shared_path"
	LogPathKey            = "log.path"
	LogLevelKey           = "log.level"
	LogConsoleKey         = "log.console"
	EraserThresholdKey    = "markup.eraser_threshold_px"
	DefaultColorKey       = "markup.default_color"
	ViewportWidthKey      = "viewport.width"
	ViewportHeightKey     = "viewport.height"
	PageCacheTTLKey       = "pages.cache_ttl"
	MetricsTextfileKey    = "metrics.textfile"
	ActorNameKey          = "actor.name"
)

type Config struct {
	DocumentsPath      string
	AuditPath          string
	EvidencePath       string
	EvidenceSharedPath string

	LogPath    string
	LogLevel   string
	LogConsole bool

	EraserThresholdPx float64
	DefaultColor      string
	ViewportWidth     int
	ViewportHeight    int
	PageCacheTTL      time.Duration

	MetricsTextfile string
	ActorName       string
}

// Load registers defaults, reads ~/.qi/config.toml when present and binds
// QI_* environment overrides onto cfg.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(base)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(DocumentsPathKey, filepath.Join(base, "documents.toml"))
	cfg.SetDefault(AuditPathKey, filepath.Join(base, "audit.toml"))
	cfg.SetDefault(EvidencePathKey, filepath.Join(base, "evidence"))
	cfg.SetDefault(EvidenceSharedPathKey, "")
	cfg.SetDefault(LogPathKey, filepath.Join(base, "logs", "qi.log"))
	cfg.SetDefault(LogLevelKey, "info")
	cfg.SetDefault(LogConsoleKey, false)
	cfg.SetDefault(EraserThresholdKey, 10.0)
	cfg.SetDefault(DefaultColorKey, "#e53935")
	cfg.SetDefault(ViewportWidthKey, 1280)
	cfg.SetDefault(ViewportHeightKey, 900)
	cfg.SetDefault(PageCacheTTLKey, 10*time.Minute)
	cfg.SetDefault(MetricsTextfileKey, "")
	cfg.SetDefault(ActorNameKey, os.Getenv("USER"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		DocumentsPath:      cfg.GetString(DocumentsPathKey),
		AuditPath:          cfg.GetString(AuditPathKey),
		EvidencePath:       cfg.GetString(EvidencePathKey),
		EvidenceSharedPath: cfg.GetString(EvidenceSharedPathKey),
		LogPath:            cfg.GetString(LogPathKey),
		LogLevel:           cfg.GetString(LogLevelKey),
		LogConsole:         cfg.GetBool(LogConsoleKey),
		EraserThresholdPx:  cfg.GetFloat64(EraserThresholdKey),
		DefaultColor:       cfg.GetString(DefaultColorKey),
		ViewportWidth:      cfg.GetInt(ViewportWidthKey),
		ViewportHeight:     cfg.GetInt(ViewportHeightKey),
		PageCacheTTL:       cfg.GetDuration(PageCacheTTLKey),
		MetricsTextfile:    cfg.GetString(MetricsTextfileKey),
		ActorName:          cfg.GetString(ActorNameKey),
	}

	if err := loaded.validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DocumentsPath) == "" {
		return errors.New("documents path is empty")
	}
	if strings.TrimSpace(c.EvidencePath) == "" {
		return errors.New("evidence path is empty")
	}
	if c.EraserThresholdPx <= 0 {
		return fmt.Errorf("eraser threshold must be positive, got %v", c.EraserThresholdPx)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	return nil
}
