package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/caarlos0/env/v11"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/features/validate"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the default configuration file.
	ConfigFileName = "sitekit.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SITEKIT_"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultPage is the default page file.
	DefaultPage = "index.html"
)

// Config represents the complete sitekit configuration.
type Config struct {
	// Name is the site name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Page is the HTML page to load, relative to the config file.
	Page string `json:"page,omitempty" yaml:"page,omitempty" env:"PAGE"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty" env:"LOG_LEVEL"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev" yaml:"dev"`

	// Forms contains form validation configuration.
	Forms FormsConfig `json:"forms" yaml:"forms"`

	// Behavior contains page behavior tuning.
	Behavior BehaviorConfig `json:"behavior" yaml:"behavior"`

	// Session contains live session configuration.
	Session SessionConfig `json:"session" yaml:"session"`

	// Metrics contains metrics configuration.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty" env:"HOST"`
}

// FormsConfig configures the validators bound to every form on the page.
type FormsConfig struct {
	// Selector selects the forms to validate (default: "form").
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	ErrorClass        string `json:"errorClass,omitempty" yaml:"errorClass,omitempty"`
	SuccessClass      string `json:"successClass,omitempty" yaml:"successClass,omitempty"`
	FieldSelector     string `json:"fieldSelector,omitempty" yaml:"fieldSelector,omitempty"`
	ErrorElementTag   string `json:"errorElementTag,omitempty" yaml:"errorElementTag,omitempty"`
	ErrorElementClass string `json:"errorElementClass,omitempty" yaml:"errorElementClass,omitempty"`

	// Messages overrides the rule messages.
	Messages validate.Messages `json:"messages,omitempty" yaml:"messages,omitempty"`

	// SuccessMessage is shown after a form passes validation.
	SuccessMessage string `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`

	// ErrorMessage is shown as an error toast after a failed submit.
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// BehaviorConfig tunes the page collaborators.
type BehaviorConfig struct {
	// HeaderOffset is subtracted from anchor targets so the header does not
	// cover them (default: 80).
	HeaderOffset float64 `json:"headerOffset,omitempty" yaml:"headerOffset,omitempty"`

	// StickyThreshold is the scroll offset past which the header sticks (default: 100).
	StickyThreshold float64 `json:"stickyThreshold,omitempty" yaml:"stickyThreshold,omitempty"`

	// SpyOffset is how far above a section the scroll spy switches to it (default: 200).
	SpyOffset float64 `json:"spyOffset,omitempty" yaml:"spyOffset,omitempty"`

	// ScrollDuration is the smooth scroll animation length (default: 800ms).
	ScrollDuration Duration `json:"scrollDuration,omitempty" yaml:"scrollDuration,omitempty"`

	// PreloaderDelay is how long the preloader stays before fading (default: 1.5s).
	PreloaderDelay Duration `json:"preloaderDelay,omitempty" yaml:"preloaderDelay,omitempty"`

	// PreloaderFade is the fade-out length (default: 500ms).
	PreloaderFade Duration `json:"preloaderFade,omitempty" yaml:"preloaderFade,omitempty"`

	// ToastDuration is how long a notification stays visible (default: 3s).
	ToastDuration Duration `json:"toastDuration,omitempty" yaml:"toastDuration,omitempty"`

	// CartMessage is the add-to-cart notification text; {item} is replaced.
	CartMessage string `json:"cartMessage,omitempty" yaml:"cartMessage,omitempty"`
}

// SessionConfig contains live session configuration.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a client message (default: 60s).
	ReadTimeout Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// MaxMessageSize is the maximum size of an incoming message (default: 64KB).
	MaxMessageSize int64 `json:"maxMessageSize,omitempty" yaml:"maxMessageSize,omitempty"`
}

// MetricsConfig contains metrics configuration.
type MetricsConfig struct {
	// Enabled exposes /metrics (default: true).
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace is the Prometheus namespace (default: "sitekit").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from a .json, .yaml or .yml file, applies
// defaults and environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E301").WithDetailf("read %s", path).Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.New("E301").WithDetailf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.New("E301").WithDetailf("parse %s", path).Wrap(err)
	}

	cfg.configPath = path
	return cfg.finish()
}

// LoadOrDefault loads path, or returns the defaults with environment
// overrides applied when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return New().finish()
	}
	return Load(path)
}

func (c *Config) finish() (*Config, error) {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.New("E302").WithDetail("environment overrides").Wrap(err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SaveTo writes the configuration as indented JSON or YAML, by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E301").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E301").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// PagePath resolves Page relative to the config file.
func (c *Config) PagePath() string {
	if c.configPath == "" || filepath.IsAbs(c.Page) {
		return c.Page
	}
	return filepath.Join(filepath.Dir(c.configPath), c.Page)
}

func (c *Config) applyDefaults() {
	if c.Page == "" {
		c.Page = DefaultPage
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}

	if c.Forms.Selector == "" {
		c.Forms.Selector = "form"
	}
	d := validate.DefaultConfig()
	if c.Forms.ErrorClass == "" {
		c.Forms.ErrorClass = d.ErrorClass
	}
	if c.Forms.SuccessClass == "" {
		c.Forms.SuccessClass = d.SuccessClass
	}
	if c.Forms.FieldSelector == "" {
		c.Forms.FieldSelector = d.FieldSelector
	}
	if c.Forms.ErrorElementTag == "" {
		c.Forms.ErrorElementTag = d.ErrorElementTag
	}
	if c.Forms.ErrorElementClass == "" {
		c.Forms.ErrorElementClass = d.ErrorElementClass
	}
	if c.Forms.SuccessMessage == "" {
		c.Forms.SuccessMessage = "Thank you for your message! We will get back to you soon."
	}
	if c.Forms.ErrorMessage == "" {
		c.Forms.ErrorMessage = "Please correct the highlighted fields."
	}

	b := &c.Behavior
	if b.HeaderOffset == 0 {
		b.HeaderOffset = 80
	}
	if b.StickyThreshold == 0 {
		b.StickyThreshold = 100
	}
	if b.SpyOffset == 0 {
		b.SpyOffset = 200
	}
	if b.ScrollDuration == 0 {
		b.ScrollDuration = Duration(800 * time.Millisecond)
	}
	if b.PreloaderDelay == 0 {
		b.PreloaderDelay = Duration(1500 * time.Millisecond)
	}
	if b.PreloaderFade == 0 {
		b.PreloaderFade = Duration(500 * time.Millisecond)
	}
	if b.ToastDuration == 0 {
		b.ToastDuration = Duration(3 * time.Second)
	}
	if b.CartMessage == "" {
		b.CartMessage = "{item} added to cart"
	}

	if c.Session.ReadTimeout == 0 {
		c.Session.ReadTimeout = Duration(60 * time.Second)
	}
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = 64 * 1024
	}

	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "sitekit"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E302").WithDetail("dev.port must be between 0 and 65535")
	}
	for name, sel := range map[string]string{
		"forms.selector":          c.Forms.Selector,
		"forms.fieldSelector":     c.Forms.FieldSelector,
		"forms.errorClass":        validate.ClassSelector(c.Forms.ErrorClass),
		"forms.errorElementClass": validate.ClassSelector(c.Forms.ErrorElementClass),
	} {
		if _, err := cascadia.Compile(sel); err != nil {
			return errors.New("E302").WithDetailf("%s %q is not a valid selector", name, sel).Wrap(err)
		}
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return errors.New("E302").WithDetailf("logLevel %q must be one of debug, info, warn, error", c.LogLevel)
	}
	for name, d := range map[string]Duration{
		"behavior.scrollDuration": c.Behavior.ScrollDuration,
		"behavior.preloaderDelay": c.Behavior.PreloaderDelay,
		"behavior.preloaderFade":  c.Behavior.PreloaderFade,
		"behavior.toastDuration":  c.Behavior.ToastDuration,
		"session.readTimeout":     c.Session.ReadTimeout,
	} {
		if d < 0 {
			return errors.New("E302").WithDetailf("%s must not be negative", name)
		}
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	return levels[strings.ToLower(c.LogLevel)]
}

// MetricsEnabled reports whether /metrics is exposed.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// ValidatorConfig returns the validate.Config for the configured forms.
// Callbacks, observer and logger are left for the caller.
func (c *Config) ValidatorConfig() validate.Config {
	return validate.Config{
		ErrorClass:        c.Forms.ErrorClass,
		SuccessClass:      c.Forms.SuccessClass,
		FieldSelector:     c.Forms.FieldSelector,
		ErrorElementTag:   c.Forms.ErrorElementTag,
		ErrorElementClass: c.Forms.ErrorElementClass,
		Messages:          c.Forms.Messages,
	}
}
