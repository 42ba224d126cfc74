package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".soundlab"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the main configuration structure for a CLI app
type Config struct {
	// AppName is the application name (e.g., "soundlab")
	AppName string `json:"-" yaml:"-"`

	// CurrentProfile is the name of the currently active profile
	CurrentProfile string `json:"current_profile,omitempty" yaml:"current_profile,omitempty"`

	// Profiles is a map of profile name to profile settings
	Profiles map[string]*Profile `json:"profiles,omitempty" yaml:"profiles,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// Profile is a named set of analysis defaults. Zero values mean "use the
// library default".
type Profile struct {
	// Name is the profile name
	Name string `json:"name" yaml:"name"`

	// SampleRate resamples audio input to this rate before analysis (optional)
	SampleRate int `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`

	// RawRate is the sample rate assumed for headerless .pcm/.raw files (optional)
	RawRate int `json:"raw_rate,omitempty" yaml:"raw_rate,omitempty"`

	// MFCC overrides the feature extraction parameters (optional)
	MFCC *MFCCSettings `json:"mfcc,omitempty" yaml:"mfcc,omitempty"`

	// Output is the default output format (optional)
	Output OutputFormat `json:"output,omitempty" yaml:"output,omitempty"`

	// G2PRules is a path to a custom G2P rule table (optional)
	G2PRules string `json:"g2p_rules,omitempty" yaml:"g2p_rules,omitempty"`

	// Extra stores free-form settings
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// MFCCSettings mirrors the MFCC extraction options in config files.
type MFCCSettings struct {
	FrameSize     int     `json:"frame_size,omitempty" yaml:"frame_size,omitempty"`
	HopSize       int     `json:"hop_size,omitempty" yaml:"hop_size,omitempty"`
	NumMelFilters int     `json:"num_mel_filters,omitempty" yaml:"num_mel_filters,omitempty"`
	NumMFCCCoeffs int     `json:"num_mfcc_coeffs,omitempty" yaml:"num_mfcc_coeffs,omitempty"`
	PreEmphasis   float64 `json:"pre_emphasis,omitempty" yaml:"pre_emphasis,omitempty"`
	LowFreq       float64 `json:"low_freq,omitempty" yaml:"low_freq,omitempty"`
	HighFreq      float64 `json:"high_freq,omitempty" yaml:"high_freq,omitempty"`
}

// LoadConfig loads configuration for the specified app from the default path
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from a custom path
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	var configPath string

	if customPath != "" {
		configPath = customPath
	} else {
		paths, err := NewPaths(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	cfg := &Config{
		AppName:    appName,
		Profiles:   make(map[string]*Profile),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing is written until the first change.
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for name, p := range cfg.Profiles {
		if p == nil {
			p = &Profile{}
			cfg.Profiles[name] = p
		}
		p.Name = name
	}

	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk, creating the directory if needed
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddProfile adds or replaces a profile
func (c *Config) AddProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Output != "" && !p.Output.Valid() {
		return fmt.Errorf("unsupported output format: %s", p.Output)
	}
	p.Name = name
	c.Profiles[name] = p
	return c.Save()
}

// DeleteProfile removes a profile
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns a specific profile
func (c *Config) GetProfile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the current profile if name
// is empty. With no name and no current profile it returns an empty profile,
// so every command works without a config file.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name != "" {
		return c.GetProfile(name)
	}
	if c.CurrentProfile == "" {
		return &Profile{}, nil
	}
	return c.GetProfile(c.CurrentProfile)
}

// ListProfiles returns all profile names in sorted order
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetExtra returns an extra value for the profile
func (p *Profile) GetExtra(key string) string {
	if p.Extra == nil {
		return ""
	}
	return p.Extra[key]
}

// SetExtra sets an extra value for the profile
func (p *Profile) SetExtra(key, value string) {
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[key] = value
}
