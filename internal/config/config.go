// Package config loads the YAML run configuration of the minnet command.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset   Dataset   `yaml:"dataset"`
	Network   Network   `yaml:"network"`
	Optimizer Optimizer `yaml:"optimizer"`
	Train     Train     `yaml:"train"`
}

// Dataset configures the spiral generator.
type Dataset struct {
	BatchSize      int     `yaml:"batch_size"`
	Classes        int     `yaml:"classes"`
	PointsPerClass int     `yaml:"points_per_class"`
	MaxAngle       float64 `yaml:"max_angle"`
	Seed           uint64  `yaml:"seed"`
}

// Network configures the classifier.
type Network struct {
	HiddenSizes      []int   `yaml:"hidden_sizes"`
	Activation       string  `yaml:"activation"`
	WeightInitMean   float64 `yaml:"weight_init_mean"`
	WeightInitStdDev float64 `yaml:"weight_init_std_dev"`
	Seed             uint64  `yaml:"seed"`
	Precision        string  `yaml:"precision"`
}

// Optimizer selects the update rule.
type Optimizer struct {
	Kind string  `yaml:"kind"`
	LR   float64 `yaml:"lr"`
}

// Train configures the training loop.
type Train struct {
	MaxEpoch     int `yaml:"max_epoch"`
	EvalInterval int `yaml:"eval_interval"`
	Workers      int `yaml:"workers"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	MaxEpoch     int
	EvalInterval int
	BatchSize    int
	LR           float64
	Seed         uint64
	Activation   string
	Optimizer    string
	Precision    string
	Workers      int
}

// Default returns the 3-class spiral run: 300 points, batch 30, one hidden
// layer of 10 sigmoid units, SGD at learning rate 1.0 for 300 epochs.
func Default() *Config {
	return &Config{
		Dataset: Dataset{
			BatchSize:      30,
			Classes:        3,
			PointsPerClass: 100,
			MaxAngle:       math.Pi,
		},
		Network: Network{
			HiddenSizes:      []int{10},
			Activation:       "sigmoid",
			WeightInitStdDev: 0.01,
			Precision:        "float64",
		},
		Optimizer: Optimizer{
			Kind: "sgd",
			LR:   1.0,
		},
		Train: Train{
			MaxEpoch:     300,
			EvalInterval: 10,
		},
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.MaxEpoch > 0 {
		c.Train.MaxEpoch = o.MaxEpoch
	}
	if o.EvalInterval > 0 {
		c.Train.EvalInterval = o.EvalInterval
	}
	if o.BatchSize > 0 {
		c.Dataset.BatchSize = o.BatchSize
	}
	if o.LR > 0 {
		c.Optimizer.LR = o.LR
	}
	if o.Seed != 0 {
		c.Dataset.Seed = o.Seed
		c.Network.Seed = o.Seed
	}
	if o.Activation != "" {
		c.Network.Activation = o.Activation
	}
	if o.Optimizer != "" {
		c.Optimizer.Kind = o.Optimizer
	}
	if o.Precision != "" {
		c.Network.Precision = o.Precision
	}
	if o.Workers > 0 {
		c.Train.Workers = o.Workers
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset.BatchSize <= 0 {
		return fmt.Errorf("dataset.batch_size must be > 0 (got %d)", c.Dataset.BatchSize)
	}
	if c.Dataset.Classes <= 0 {
		return fmt.Errorf("dataset.classes must be > 0 (got %d)", c.Dataset.Classes)
	}
	if c.Dataset.PointsPerClass <= 0 {
		return fmt.Errorf("dataset.points_per_class must be > 0 (got %d)", c.Dataset.PointsPerClass)
	}
	if c.Dataset.BatchSize > c.Dataset.Classes*c.Dataset.PointsPerClass {
		return fmt.Errorf("dataset.batch_size %d exceeds the %d points", c.Dataset.BatchSize, c.Dataset.Classes*c.Dataset.PointsPerClass)
	}
	for i, size := range c.Network.HiddenSizes {
		if size <= 0 {
			return fmt.Errorf("network.hidden_sizes[%d] must be > 0 (got %d)", i, size)
		}
	}
	switch strings.ToLower(c.Network.Activation) {
	case "sigmoid", "relu":
	default:
		return fmt.Errorf("network.activation must be sigmoid or relu (got %q)", c.Network.Activation)
	}
	if c.Network.WeightInitStdDev < 0 {
		return fmt.Errorf("network.weight_init_std_dev must be >= 0 (got %g)", c.Network.WeightInitStdDev)
	}
	switch c.Network.Precision {
	case "float32", "float64":
	default:
		return fmt.Errorf("network.precision must be float32 or float64 (got %q)", c.Network.Precision)
	}
	switch c.Optimizer.Kind {
	case "sgd", "adam":
	default:
		return fmt.Errorf("optimizer.kind must be sgd or adam (got %q)", c.Optimizer.Kind)
	}
	if c.Optimizer.LR < 0 {
		return fmt.Errorf("optimizer.lr must be >= 0 (got %g)", c.Optimizer.LR)
	}
	if c.Train.MaxEpoch <= 0 {
		return fmt.Errorf("train.max_epoch must be > 0 (got %d)", c.Train.MaxEpoch)
	}
	if c.Train.EvalInterval <= 0 {
		return fmt.Errorf("train.eval_interval must be > 0 (got %d)", c.Train.EvalInterval)
	}
	if c.Train.Workers < 0 {
		return fmt.Errorf("train.workers must be >= 0 (got %d)", c.Train.Workers)
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
