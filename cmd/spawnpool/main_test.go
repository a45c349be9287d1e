package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/report"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "spawnpool v"+version)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawnpool.yaml")

	assert.Contains(t, execute(t, "init", "--out", path), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Templates, cfg.Templates)
}

func TestTypesCmd(t *testing.T) {
	out := execute(t, "types")

	assert.Contains(t, out, "KIND")
	assert.Regexp(t, `mage\s+8\s+distance\s+10`, out)
	assert.Regexp(t, `warrior\s+20\s+melee\s+10`, out)
	assert.Regexp(t, `spider\s+12\s+melee\s+10`, out)
}

func TestSimulateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json.zst")

	out := execute(t, "simulate", "--rounds", "3", "--report", path, "--log-level", "error")

	assert.Contains(t, out, `Pool "enemies": 3 rounds`)
	assert.Contains(t, out, "acquired:    39")

	r, err := report.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "enemies", r.Pool)
	require.NotNil(t, r.Simulation)
	assert.Equal(t, 3, r.Simulation.Rounds)
	assert.Equal(t, int64(39), r.Stats.Released)
}
