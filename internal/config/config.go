// Package config loads the puffin.yaml configuration.
//
// The file is parsed with yaml.v3 into a generic map and then decoded with
// mapstructure, so enum fields accept their snake case names and durations
// accept strings such as "2s".
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/puffin/internal/logging"
	"github.com/aretw0/puffin/internal/runtime"
	"github.com/aretw0/puffin/internal/scenes"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file looked up when no --config flag is given.
const DefaultPath = "puffin.yaml"

// Snapshot backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	InitialState domain.SceneStateEnum `mapstructure:"initial_state"`
	TickRate     time.Duration         `mapstructure:"tick_rate"`
	TitleDelay   time.Duration         `mapstructure:"title_delay"`
	Volume       int                   `mapstructure:"volume"`
	LogLevel     string                `mapstructure:"log_level"`

	// States replaces the default registry when not empty.
	States []StateConfig `mapstructure:"states"`

	// Navigation overrides entries of the default route table.
	Navigation []RouteConfig `mapstructure:"navigation"`

	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Introspection IntrospectionConfig `mapstructure:"introspection"`
	Snapshot      SnapshotConfig      `mapstructure:"snapshot"`
}

// StateConfig registers one state and its ordered scene set.
type StateConfig struct {
	State  domain.SceneStateEnum `mapstructure:"state"`
	Scenes []domain.SceneType    `mapstructure:"scenes"`
}

// RouteConfig maps a navigation event to a target state.
// Speed is one of slow, medium or fast; Step overrides it when set.
type RouteConfig struct {
	Event domain.EventKind      `mapstructure:"event"`
	To    domain.SceneStateEnum `mapstructure:"to"`
	Speed string                `mapstructure:"speed"`
	Step  float64               `mapstructure:"step"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type IntrospectionConfig struct {
	Addr string `mapstructure:"addr"`
}

type SnapshotConfig struct {
	Backend   string        `mapstructure:"backend"`
	RunID     string        `mapstructure:"run_id"`
	RedisAddr string        `mapstructure:"redis_addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	Prefix    string        `mapstructure:"prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// Default returns the configuration the game ships with.
func Default() *Config {
	return &Config{
		InitialState: domain.StateTitle,
		TickRate:     time.Second / 60,
		TitleDelay:   scenes.DefaultTitleDelay,
		Volume:       scenes.DefaultOptions().Volume,
		LogLevel:     "info",
		Snapshot: SnapshotConfig{
			Backend:   BackendMemory,
			RunID:     "local",
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Result:      c,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks value ranges. Registry and route consistency is checked
// when they are built.
func (c *Config) Validate() error {
	var errs []error
	if !c.InitialState.Valid() {
		errs = append(errs, fmt.Errorf("initial_state: %s is not a steady state", c.InitialState))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %s", c.TickRate))
	}
	if c.TitleDelay < 0 {
		errs = append(errs, fmt.Errorf("title_delay must not be negative, got %s", c.TitleDelay))
	}
	if c.Volume < 0 || c.Volume > 100 {
		errs = append(errs, fmt.Errorf("volume must be within 0..100, got %d", c.Volume))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.Snapshot.Backend {
	case "", BackendNone, BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("snapshot.backend: unknown backend %q", c.Snapshot.Backend))
	}
	for i, r := range c.Navigation {
		if _, err := r.step(); err != nil {
			errs = append(errs, fmt.Errorf("navigation[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Registry builds the scene state registry, falling back to the default table.
func (c *Config) Registry() (*registry.Registry, error) {
	if len(c.States) == 0 {
		return registry.Default(), nil
	}
	b := registry.NewBuilder()
	for _, s := range c.States {
		if err := b.Register(s.State, s.Scenes...); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Routes returns the default route table with the configured overrides applied.
func (c *Config) Routes() (map[domain.EventKind]runtime.Route, error) {
	routes := runtime.DefaultRoutes()
	for _, r := range c.Navigation {
		step, err := r.step()
		if err != nil {
			return nil, err
		}
		routes[r.Event] = runtime.Route{To: r.To, Step: step}
	}
	return routes, nil
}

// SceneOptions returns the tuning passed to the concrete scenes.
func (c *Config) SceneOptions() scenes.Options {
	return scenes.Options{TitleDelay: c.TitleDelay, Volume: c.Volume}
}

// MinStep is the smallest configurable step amount, a fade of 10000 ticks.
const MinStep = 1e-4

func (r RouteConfig) step() (float64, error) {
	if r.Step != 0 {
		if r.Step < 0 {
			return 0, domain.ErrInvalidStepAmount
		}
		if r.Step < MinStep {
			return 0, fmt.Errorf("step %g is below %g: %w", r.Step, MinStep, domain.ErrInvalidStepAmount)
		}
		return r.Step, nil
	}
	return ParseSpeed(r.Speed)
}

// ParseSpeed maps a named speed onto its step amount. An empty name is medium.
func ParseSpeed(name string) (float64, error) {
	switch name {
	case "slow":
		return domain.SpeedSlow, nil
	case "", "medium":
		return domain.SpeedMedium, nil
	case "fast":
		return domain.SpeedFast, nil
	}
	return 0, fmt.Errorf("unknown speed %q", name)
}
