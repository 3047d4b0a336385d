// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, config, Current())
	lvl, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestValidate(t *testing.T) {
	for _, x := range [...]struct {
		what string
		edit func(*Config)
	}{
		{"fov", func(c *Config) { c.FOV = 0 }},
		{"fov", func(c *Config) { c.FOV = 180 }},
		{"near", func(c *Config) { c.Near = -1 }},
		{"far", func(c *Config) { c.Far = c.Near }},
		{"max_frame_delta", func(c *Config) { c.MaxFrameDelta = 0 }},
		{"max_light", func(c *Config) { c.MaxLight = MaxLight + 1 }},
		{"max_light", func(c *Config) { c.MaxLight = 0 }},
		{"fly.speed", func(c *Config) { c.Fly.Speed = 0 }},
		{"orbit.distance", func(c *Config) { c.Orbit.Distance = 0.01 }},
		{"log_level", func(c *Config) { c.LogLevel = "loud" }},
	} {
		config := DefaultConfig()
		x.edit(&config)
		err := config.Validate()
		require.Error(t, err, x.what)
		assert.Contains(t, err.Error(), x.what)
		assert.True(t, strings.Contains(err.Error(), cfgPrefix), err.Error())
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "stage.toml", `
fov = 45.0
far = 250.0
log_level = "debug"

[fly]
speed = 12.5

[orbit]
distance = 3.0
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.FOV = 45
	want.Far = 250
	want.LogLevel = "debug"
	want.Fly.Speed = 12.5
	want.Orbit.Distance = 3
	assert.Equal(t, want, config)
}

func TestLoadConfigYAML(t *testing.T) {
	for _, name := range []string{"stage.yaml", "stage.YML"} {
		path := writeFile(t, name, `
near: 0.5
max_frame_delta: 0.1
max_light: 4
orbit:
  zoom_factor: 0.2
  min_distance: 1
`)
		config, err := LoadConfig(path)
		require.NoError(t, err)
		want := DefaultConfig()
		want.Near = 0.5
		want.MaxFrameDelta = 0.1
		want.MaxLight = 4
		want.Orbit.ZoomFactor = 0.2
		want.Orbit.MinDistance = 1
		assert.Equal(t, want, config)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeFile(t, "stage.json", "{}"))
	assert.ErrorContains(t, err, "unknown file format")

	_, err = LoadConfig(writeFile(t, "bad.toml", "fov = = 3"))
	assert.ErrorContains(t, err, "cannot parse")

	_, err = LoadConfig(writeFile(t, "bad.yaml", "fov: [1, 2"))
	assert.ErrorContains(t, err, "cannot parse")

	_, err = LoadConfig(writeFile(t, "invalid.yaml", "near: 10\nfar: 5\n"))
	assert.ErrorContains(t, err, "far must be greater than near")
}

func TestConfigure(t *testing.T) {
	defer func() {
		config := DefaultConfig()
		Configure(&config)
	}()
	config := DefaultConfig()
	config.LogLevel = "debug"
	config.MaxLight = 2
	Configure(&config)
	assert.Equal(t, 2, Current().MaxLight)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
