// Package config loads experiment and training configuration files.
// YAML is the primary format; INI files with the same sections are also
// accepted.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/alds-harness/experiment/dataset"
	"github.com/cwbudde/alds-harness/experiment/model"
	"gopkg.in/yaml.v3"
)

const defaultExtent = 2 * math.Pi

// ErrUnknownFormat is returned for files that are neither YAML nor INI.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Experiment is the experiment configuration (--exp_config).
type Experiment struct {
	// Dataset selects and configures the dataset.
	Dataset DatasetSection `yaml:"dataset"`

	// Spectrum configures the TKE spectrum diagnostic.
	Spectrum SpectrumConfig `yaml:"spectrum"`

	// Export configures VTK export of predictions.
	Export ExportConfig `yaml:"export"`

	// Plot configures prediction and spectrum plots.
	Plot PlotConfig `yaml:"plot"`

	// Logging configures log verbosity.
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetSection names a dataset and carries its options.
type DatasetSection struct {
	Name            string `yaml:"name"`
	dataset.Options `yaml:",inline"`
}

// SpectrumConfig configures the TKE spectrum computation.
type SpectrumConfig struct {
	// Lx and Ly are the physical domain extents. Default 2π each.
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
	// Bounds is "error" (default) or "discard".
	Bounds string `yaml:"bounds"`
}

// ExportConfig configures prediction export.
type ExportConfig struct {
	MeshPath string `yaml:"mesh_path"`
	SavePath string `yaml:"save_path"`
}

// PlotConfig configures plot output.
type PlotConfig struct {
	// Mode is "save" (PDF), "save_png", "plt" or "wandb".
	Mode string `yaml:"mode"`
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `yaml:"level"`
}

// Train is the training configuration (--train_config).
type Train struct {
	InChannels   int           `yaml:"in_channels"`
	OutChannels  int           `yaml:"out_channels"`
	Model        model.Options `yaml:"model"`
	Epochs       int           `yaml:"epochs"`
	BatchSize    int           `yaml:"batch_size"`
	LearningRate float64       `yaml:"learning_rate"`
}

// DefaultExperiment returns an Experiment with defaults applied.
func DefaultExperiment() *Experiment {
	return &Experiment{
		Dataset:  DatasetSection{Name: "duct"},
		Spectrum: SpectrumConfig{Lx: defaultExtent, Ly: defaultExtent, Bounds: "error"},
		Plot:     PlotConfig{Mode: "save_png", Path: "figures/prediction"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// DefaultTrain returns a Train with defaults applied.
func DefaultTrain() *Train {
	return &Train{
		InChannels:   1,
		OutChannels:  1,
		Epochs:       100,
		BatchSize:    1,
		LearningRate: 1e-3,
	}
}

// LoadYAML reads a YAML file into a nested mapping.
func LoadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return out, nil
}

// LoadExperiment reads an experiment configuration. Fields missing from the
// file keep their defaults.
func LoadExperiment(path string) (*Experiment, error) {
	cfg := DefaultExperiment()
	switch format(path) {
	case formatYAML:
		if err := decodeYAML(path, cfg); err != nil {
			return nil, err
		}
	case formatINI:
		if err := experimentFromINI(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return cfg, nil
}

// LoadTrain reads a training configuration.
func LoadTrain(path string) (*Train, error) {
	cfg := DefaultTrain()
	switch format(path) {
	case formatYAML:
		if err := decodeYAML(path, cfg); err != nil {
			return nil, err
		}
	case formatINI:
		if err := trainFromINI(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return cfg, nil
}

func decodeYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatYAML
	formatINI
)

func format(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".ini":
		return formatINI
	default:
		return formatUnknown
	}
}
