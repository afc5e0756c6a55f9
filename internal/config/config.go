package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"dropsel/internal/domain"
	"dropsel/internal/eventbus"
)

// CurrentVersion is the only config schema version understood
const CurrentVersion = 1

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	UISettings UISettings       `toml:"ui"`
	Dropdowns  []DropdownConfig `toml:"dropdown"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	LogFile    string `toml:"log_file"`
	StartDir   string `toml:"start_dir"`   // where the file picker opens
	ShowHidden bool   `toml:"show_hidden"` // show dotfiles in the file picker
}

// DropdownConfig describes one dropdown widget
type DropdownConfig struct {
	ID              string          `toml:"id,omitempty"`
	Title           string          `toml:"title"`
	AllowFileUpload *bool           `toml:"allow_file_upload,omitempty"` // nil means true
	PruneStale      bool            `toml:"prune_stale,omitempty"`
	Options         []domain.Option `toml:"option"`
}

// FileUploadAllowed reports whether the upload control is shown
func (d DropdownConfig) FileUploadAllowed() bool {
	return d.AllowFileUpload == nil || *d.AllowFileUpload
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	explicit bool // path was given by the caller, so it must exist
}

// DefaultPath returns $XDG_CONFIG_HOME/dropsel/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dropsel", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when
// path is empty. Only the default path may be missing; Load then returns
// DefaultConfig.
func NewConfigService(path string) ConfigService {
	if path == "" {
		return &configService{filePath: DefaultPath()}
	}
	return &configService{filePath: path, explicit: true}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the service's file. A missing default file yields DefaultConfig;
// a missing explicit file is an error.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) && !cs.explicit {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:      cs.filePath,
			Dropdowns: len(cfg.Dropdowns),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Parse decodes TOML config data, fills defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.UISettings.StartDir == "" {
		c.UISettings.StartDir = "."
	}
	for i := range c.Dropdowns {
		if c.Dropdowns[i].ID == "" {
			c.Dropdowns[i].ID = uuid.NewString()
		}
	}
}

// Validate checks the config for problems the UI cannot recover from
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported version %d: %w", c.Version, ErrInvalidConfig)
	}
	if len(c.Dropdowns) == 0 {
		return fmt.Errorf("no dropdowns defined: %w", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Dropdowns))
	for i, d := range c.Dropdowns {
		if strings.TrimSpace(d.Title) == "" {
			return fmt.Errorf("dropdown %d: title is required: %w", i+1, ErrInvalidConfig)
		}
		if d.ID != "" && seen[d.ID] {
			return fmt.Errorf("dropdown %d: duplicate id %q: %w", i+1, d.ID, ErrInvalidConfig)
		}
		seen[d.ID] = true
	}
	return nil
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	cfg := &Config{
		Version: CurrentVersion,
		UISettings: UISettings{
			LogFile:  "dropsel.log",
			StartDir: ".",
		},
		Dropdowns: []DropdownConfig{
			{
				Title: "Fruits",
				Options: []domain.Option{
					{Value: "apple", Label: "Apple"},
					{Value: "banana", Label: "Banana"},
					{Value: "cherry", Label: "Cherry"},
					{Value: "grape", Label: "Grape"},
					{Value: "pineapple", Label: "Pineapple"},
				},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}
