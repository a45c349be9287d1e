package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/spawnpool/pkg/entity"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

const sample = `
name: horde
initial_amount: 5
parent: ${SPAWNPOOL_TEST_PARENT}
templates:
  - kind: mage
    health: 8
    attack_type: distance
  - kind: Spider
    health: 12
    attack_type: melee
    count: 3
simulation:
  rounds: 7
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spawnpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SPAWNPOOL_TEST_PARENT", "dungeon")

	cfg, err := Load(writeConfig(t, sample))

	require.NoError(t, err)
	assert.Equal(t, "horde", cfg.Name)
	assert.Equal(t, 5, cfg.InitialAmount)
	assert.Equal(t, "dungeon", cfg.Parent)
	assert.Equal(t, 7, cfg.Simulation.Rounds)
	assert.Equal(t, 10, cfg.Simulation.BatchSize, "default applies to unset keys")
	assert.Equal(t, "info", cfg.Logging.Level)

	templates, err := cfg.EntityTemplates()
	require.NoError(t, err)
	assert.Equal(t, []entity.Template{
		{Kind: entity.Mage, Health: 8, AttackType: entity.Distance},
		{Kind: entity.Spider, Health: 12, AttackType: entity.Melee, Count: 3},
	}, templates)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SPAWNPOOL_INITIAL_AMOUNT", "50")
	t.Setenv("SPAWNPOOL_SIMULATION_RANDOMIZE", "true")
	t.Setenv("SPAWNPOOL_LOGGING_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, sample))

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.InitialAmount)
	assert.True(t, cfg.Simulation.Randomize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"no templates":    "name: x\n",
		"unknown kind":    "templates:\n  - {kind: dragon, health: 5, attack_type: melee}\n",
		"bad attack":      "templates:\n  - {kind: mage, health: 5, attack_type: magic}\n",
		"zero health":     "templates:\n  - {kind: mage, health: 0, attack_type: melee}\n",
		"duplicate kind":  "templates:\n  - {kind: mage, health: 5, attack_type: melee}\n  - {kind: MAGE, health: 6, attack_type: melee}\n",
		"negative amount": "initial_amount: -1\ntemplates:\n  - {kind: mage, health: 5, attack_type: melee}\n",
		"bad log level":   "logging: {level: loud}\ntemplates:\n  - {kind: mage, health: 5, attack_type: melee}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation), err.Error())
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("templates: [\n"))

	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestSaveThenLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawnpool.yaml")
	require.NoError(t, Save(path, Default()))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoggerConfig(t *testing.T) {
	lc := LoggingConfig{File: "/tmp/x.log", MaxBackups: 2}.LoggerConfig()

	assert.Equal(t, "info", lc.Level)
	assert.Equal(t, "/tmp/x.log", lc.File)
	assert.Equal(t, 2, lc.MaxBackups)
}
