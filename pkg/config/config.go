package config

import (
	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/spawnpool/pkg/entity"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/logger"
)

// Config is the configuration of one spawnpool pool
type Config struct {
	// Name identifies the pool in logs and metrics
	Name string `yaml:"name" mapstructure:"name"`
	// InitialAmount is how many instances each template is pre-filled with
	InitialAmount int `yaml:"initial_amount" mapstructure:"initial_amount"`
	// Seed makes random selection reproducible; 0 picks a random seed
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
	// Parent is the ownership context new instances are attached to
	Parent string `yaml:"parent" mapstructure:"parent"`

	Templates []TemplateConfig `yaml:"templates" mapstructure:"templates"`

	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics" mapstructure:"metrics"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
}

// TemplateConfig describes one enemy kind
type TemplateConfig struct {
	Kind       string `yaml:"kind" mapstructure:"kind"`
	Health     int    `yaml:"health" mapstructure:"health"`
	AttackType string `yaml:"attack_type" mapstructure:"attack_type"`
	// Count overrides InitialAmount for this kind when positive
	Count int `yaml:"count,omitempty" mapstructure:"count"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding"`
	Development bool   `yaml:"development" mapstructure:"development"`
	File        string `yaml:"file,omitempty" mapstructure:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups,omitempty" mapstructure:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days,omitempty" mapstructure:"max_age_days"`
	Compress    bool   `yaml:"compress,omitempty" mapstructure:"compress"`
}

// MetricsConfig contains Prometheus exporter settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Listen  string `yaml:"listen" mapstructure:"listen"`
}

// SimulationConfig controls the spawn simulation
type SimulationConfig struct {
	// Rounds is the number of spawn waves
	Rounds int `yaml:"rounds" mapstructure:"rounds"`
	// BatchSize is how many melee enemies each wave requests
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
	// Randomize draws the batch randomly instead of spreading it evenly
	Randomize bool `yaml:"randomize" mapstructure:"randomize"`
	// HealthThreshold selects the "strong" enemy of each wave
	HealthThreshold int `yaml:"health_threshold" mapstructure:"health_threshold"`
	// Spacing is the x distance between placed enemies
	Spacing float64 `yaml:"spacing" mapstructure:"spacing"`
}

// Default returns the sample three-enemy configuration
func Default() *Config {
	return &Config{
		Name:          "enemies",
		InitialAmount: 10,
		Parent:        "arena",
		Templates: []TemplateConfig{
			{Kind: "mage", Health: 8, AttackType: "distance"},
			{Kind: "warrior", Health: 20, AttackType: "melee"},
			{Kind: "spider", Health: 12, AttackType: "melee"},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9090",
		},
		Simulation: SimulationConfig{
			Rounds:          100,
			BatchSize:       10,
			Randomize:       false,
			HealthThreshold: 10,
			Spacing:         1,
		},
	}
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New(errors.ErrorTypeValidation, "name is required")
	}
	if c.InitialAmount < 0 {
		return errors.New(errors.ErrorTypeValidation, "initial_amount cannot be negative").
			WithDetail("initial_amount", c.InitialAmount)
	}
	if len(c.Templates) == 0 {
		return errors.New(errors.ErrorTypeValidation, "at least one template is required")
	}
	if _, err := c.EntityTemplates(); err != nil {
		return err
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "invalid logging.level")
		}
	}
	if c.Simulation.Rounds < 0 {
		return errors.New(errors.ErrorTypeValidation, "simulation.rounds cannot be negative")
	}
	if c.Simulation.BatchSize < 0 {
		return errors.New(errors.ErrorTypeValidation, "simulation.batch_size cannot be negative")
	}
	return nil
}

// EntityTemplates converts the template section into entity templates.
// Kinds must be known and unique.
func (c *Config) EntityTemplates() ([]entity.Template, error) {
	out := make([]entity.Template, 0, len(c.Templates))
	seen := make(map[entity.Kind]bool, len(c.Templates))
	for i, t := range c.Templates {
		kind, err := entity.ParseKind(t.Kind)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid template kind").
				WithDetail("index", i)
		}
		if seen[kind] {
			return nil, errors.New(errors.ErrorTypeValidation, "template kind listed twice").
				WithDetail("kind", kind.String())
		}
		seen[kind] = true

		attack, err := entity.ParseAttackType(t.AttackType)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "invalid template attack_type").
				WithDetail("kind", kind.String())
		}
		if t.Health <= 0 {
			return nil, errors.New(errors.ErrorTypeValidation, "template health must be positive").
				WithDetail("kind", kind.String())
		}
		if t.Count < 0 {
			return nil, errors.New(errors.ErrorTypeValidation, "template count cannot be negative").
				WithDetail("kind", kind.String())
		}

		out = append(out, entity.Template{
			Kind:       kind,
			Health:     t.Health,
			AttackType: attack,
			Count:      t.Count,
		})
	}
	return out, nil
}

// LoggerConfig maps the logging section onto logger.Config
func (l LoggingConfig) LoggerConfig() logger.Config {
	level := l.Level
	if level == "" {
		level = "info"
	}
	return logger.Config{
		Level:       level,
		Development: l.Development,
		Encoding:    l.Encoding,
		File:        l.File,
		MaxSizeMB:   l.MaxSizeMB,
		MaxBackups:  l.MaxBackups,
		MaxAgeDays:  l.MaxAgeDays,
		Compress:    l.Compress,
	}
}
