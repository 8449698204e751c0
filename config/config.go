// SPDX-License-Identifier: MIT

// Package config loads pipeline settings with priority
// environment > YAML file > defaults and turns them into kernel and embed
// options.
//
// Environment variables carry the GRAPHKKE_ prefix, for example
// GRAPHKKE_VARIANT=random_walk or GRAPHKKE_EMBEDDING_DIMENSION=2.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/graphkke/embed"
	"github.com/katalvlaran/graphkke/kernel"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRAPHKKE_"

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full pipeline configuration.
type Config struct {
	Kernel    KernelConfig    `yaml:"kernel"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// KernelConfig mirrors kernel.Options.
type KernelConfig struct {
	Variant            string  `yaml:"variant" validate:"oneof=shortest_path random_walk subtree"`
	Labels             string  `yaml:"labels" validate:"oneof=node degree none"`
	Distance           string  `yaml:"distance" validate:"oneof=weighted hops"`
	DistanceResolution float64 `yaml:"distance_resolution" validate:"gt=0"`
	Normalize          bool    `yaml:"normalize"`
	Workers            int     `yaml:"workers" validate:"gte=0"`
	WalkLength         int     `yaml:"walk_length" validate:"gte=0"`
	WalkDecay          float64 `yaml:"walk_decay" validate:"gt=0,lte=1"`
	SubtreeDecay       float64 `yaml:"subtree_decay" validate:"gt=0,lte=1"`
}

// EmbeddingConfig mirrors embed.Options. Dimension 0 disables the embedding.
type EmbeddingConfig struct {
	Dimension int     `yaml:"dimension" validate:"gte=0"`
	Center    bool    `yaml:"center"`
	Epsilon   float64 `yaml:"epsilon" validate:"gte=0"`
	Solver    string  `yaml:"solver" validate:"oneof=jacobi gonum"`
	MaxIter   int     `yaml:"max_iter" validate:"gte=0"`
	Tol       float64 `yaml:"tol" validate:"gte=0"`
}

// Default returns the library defaults: unnormalized shortest-path kernel,
// no embedding.
func Default() Config {
	return Config{
		Kernel: KernelConfig{
			Variant:            kernel.ShortestPath.String(),
			Labels:             kernel.LabelsNode.String(),
			Distance:           kernel.DistanceWeighted.String(),
			DistanceResolution: kernel.DefaultDistanceResolution,
			WalkLength:         kernel.DefaultWalkLength,
			WalkDecay:          kernel.DefaultWalkDecay,
			SubtreeDecay:       kernel.DefaultSubtreeDecay,
		},
		Embedding: EmbeddingConfig{
			Center:  true,
			Epsilon: embed.DefaultEpsilon,
			Solver:  embed.SolverJacobi.String(),
			Tol:     embed.DefaultTol,
		},
		LogLevel: "info",
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty
// or the file does not exist) and GRAPHKKE_ environment variables, then
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: load %s: %w", ErrInvalidConfig, path, err)
		}
	}
	if err := loadEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates it. Environment
// variables are not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadEnv applies GRAPHKKE_ overrides. lookup is os.LookupEnv outside tests.
func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = i
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	// Kernel
	str("VARIANT", &cfg.Kernel.Variant)
	str("LABELS", &cfg.Kernel.Labels)
	str("DISTANCE", &cfg.Kernel.Distance)
	float("DISTANCE_RESOLUTION", &cfg.Kernel.DistanceResolution)
	boolean("NORMALIZE", &cfg.Kernel.Normalize)
	integer("WORKERS", &cfg.Kernel.Workers)
	integer("WALK_LENGTH", &cfg.Kernel.WalkLength)
	float("WALK_DECAY", &cfg.Kernel.WalkDecay)
	float("SUBTREE_DECAY", &cfg.Kernel.SubtreeDecay)

	// Embedding
	integer("EMBEDDING_DIMENSION", &cfg.Embedding.Dimension)
	boolean("EMBEDDING_CENTER", &cfg.Embedding.Center)
	float("EMBEDDING_EPSILON", &cfg.Embedding.Epsilon)
	str("EMBEDDING_SOLVER", &cfg.Embedding.Solver)
	integer("EMBEDDING_MAX_ITER", &cfg.Embedding.MaxIter)
	float("EMBEDDING_TOL", &cfg.Embedding.Tol)

	str("LOG_LEVEL", &cfg.LogLevel)

	return errors.Join(errs...)
}

// Validate checks every field against its struct tag.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

// KernelOptions converts the kernel section into kernel.Options.
func (c Config) KernelOptions(logger *slog.Logger) ([]kernel.Option, error) {
	v, err := kernel.ParseVariant(c.Kernel.Variant)
	if err != nil {
		return nil, err
	}
	lp, err := kernel.ParseLabelPolicy(c.Kernel.Labels)
	if err != nil {
		return nil, err
	}
	d, err := kernel.ParseDistance(c.Kernel.Distance)
	if err != nil {
		return nil, err
	}

	return []kernel.Option{
		kernel.WithVariant(v),
		kernel.WithLabelPolicy(lp),
		kernel.WithDistance(d),
		kernel.WithDistanceResolution(c.Kernel.DistanceResolution),
		kernel.WithNormalize(c.Kernel.Normalize),
		kernel.WithWorkers(c.Kernel.Workers),
		kernel.WithWalkLength(c.Kernel.WalkLength),
		kernel.WithWalkDecay(c.Kernel.WalkDecay),
		kernel.WithSubtreeDecay(c.Kernel.SubtreeDecay),
		kernel.WithLogger(logger),
	}, nil
}

// EmbedOptions converts the embedding section into embed.Options.
func (c Config) EmbedOptions(logger *slog.Logger) ([]embed.Option, error) {
	s, err := embed.ParseSolver(c.Embedding.Solver)
	if err != nil {
		return nil, err
	}

	return []embed.Option{
		embed.WithCenter(c.Embedding.Center),
		embed.WithEpsilon(c.Embedding.Epsilon),
		embed.WithSolver(s),
		embed.WithMaxIter(c.Embedding.MaxIter),
		embed.WithTolerance(c.Embedding.Tol),
		embed.WithLogger(logger),
	}, nil
}
