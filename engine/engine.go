// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements configuration and the
// scene's publishing of lights and drawables.
package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// The maximum number of lights per frame.
	MaxLight = 16

	dflFOV           = 60
	dflNear          = 0.1
	dflFar           = 1000
	dflMaxFrameDelta = 0.25
	dflLogLevel      = "info"
)

const cfgPrefix = "config: "

func newCfgErr(reason string) error { return errors.New(cfgPrefix + reason) }

// FlyConfig configures camera.Fly controllers.
type FlyConfig struct {
	// Units per second.
	//
	// Default is 5.
	Speed float32 `toml:"speed" yaml:"speed"`

	// Degrees per pixel.
	//
	// Default is 0.2.
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
}

// OrbitConfig configures camera.Orbit controllers.
type OrbitConfig struct {
	// Default is 10.
	Distance float32 `toml:"distance" yaml:"distance"`

	// Degrees per pixel.
	//
	// Default is 0.25.
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`

	// Fraction of the distance covered by one unit of
	// scrolling.
	//
	// Default is 0.1.
	ZoomFactor float32 `toml:"zoom_factor" yaml:"zoom_factor"`

	// Default is 0.1.
	MinDistance float32 `toml:"min_distance" yaml:"min_distance"`
}

// Config is used to configure the engine.
type Config struct {
	// Vertical field of view of perspective cameras,
	// in degrees.
	//
	// Default is 60.
	FOV float32 `toml:"fov" yaml:"fov"`

	// Near clip distance.
	//
	// Default is 0.1.
	Near float32 `toml:"near" yaml:"near"`

	// Far clip distance.
	//
	// Default is 1000.
	Far float32 `toml:"far" yaml:"far"`

	// The largest time step, in seconds, that a single
	// frame can advance the simulation by.
	//
	// Default is 0.25.
	MaxFrameDelta float32 `toml:"max_frame_delta" yaml:"max_frame_delta"`

	// The maximum number of lights per frame.
	//
	// Default is MaxLight.
	MaxLight int `toml:"max_light" yaml:"max_light"`

	Fly   FlyConfig   `toml:"fly" yaml:"fly"`
	Orbit OrbitConfig `toml:"orbit" yaml:"orbit"`

	// One of "debug", "info", "warn" or "error".
	//
	// Default is "info".
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FOV:           dflFOV,
		Near:          dflNear,
		Far:           dflFar,
		MaxFrameDelta: dflMaxFrameDelta,
		MaxLight:      MaxLight,
		Fly: FlyConfig{
			Speed:       5,
			Sensitivity: 0.2,
		},
		Orbit: OrbitConfig{
			Distance:    10,
			Sensitivity: 0.25,
			ZoomFactor:  0.1,
			MinDistance: 0.1,
		},
		LogLevel: dflLogLevel,
	}
}

// Validate checks that c is a usable configuration.
func (c *Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return newCfgErr("fov must be in the range (0, 180)")
	case c.Near <= 0:
		return newCfgErr("near must be greater than zero")
	case c.Far <= c.Near:
		return newCfgErr("far must be greater than near")
	case c.MaxFrameDelta <= 0:
		return newCfgErr("max_frame_delta must be greater than zero")
	case c.MaxLight < 1 || c.MaxLight > MaxLight:
		return errors.Wrapf(newCfgErr("max_light out of bounds"), "have %d, max %d", c.MaxLight, MaxLight)
	case c.Fly.Speed <= 0:
		return newCfgErr("fly.speed must be greater than zero")
	case c.Orbit.Distance < c.Orbit.MinDistance || c.Orbit.MinDistance <= 0:
		return newCfgErr("orbit.distance must not be less than orbit.min_distance")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns c.LogLevel as a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrap(newCfgErr("invalid log_level"), err.Error())
	}
	return lvl, nil
}

// LoadConfig reads the configuration file at path.
// The format is chosen by the file extension: .toml,
// .yaml or .yml. Fields not present in the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, cfgPrefix+"cannot read file")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &config)
	default:
		return config, errors.Wrapf(newCfgErr("unknown file format"), "extension %q", ext)
	}
	if err != nil {
		return config, errors.Wrapf(err, cfgPrefix+"cannot parse %s", path)
	}
	if err = config.Validate(); err != nil {
		return config, errors.Wrap(err, path)
	}
	slog.Debug("engine.LoadConfig", "path", path)
	return config, nil
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// It also sets the level of the default logger.
// config must be valid.
func Configure(config *Config) {
	cfg = *config
	if lvl, err := cfg.Level(); err == nil {
		slog.SetLogLoggerLevel(lvl)
	} else {
		slog.Warn("engine.Configure: ignoring log level", "err", err)
	}
}

// Current returns the engine's configuration.
func Current() Config { return cfg }

func init() {
	config := DefaultConfig()
	Configure(&config)
}
