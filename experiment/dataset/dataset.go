// Package dataset selects a training dataset by name and resolves its typed
// configuration. Loading samples is outside this package.
package dataset

import (
	"errors"
	"fmt"

	"github.com/cwbudde/alds-harness/experiment"
)

// Kind identifies a dataset.
type Kind int

const (
	// KindDuct is the duct-flow CFD analysis dataset.
	KindDuct Kind = iota + 1
)

// All returns every supported kind.
func All() []Kind { return []Kind{KindDuct} }

func (k Kind) String() string {
	switch k {
	case KindDuct:
		return "duct"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parse maps a selector name to a Kind. Names match exactly.
func Parse(name string) (Kind, error) {
	switch name {
	case "duct":
		return KindDuct, nil
	default:
		return 0, &experiment.SelectorError{What: "dataset name", Name: name}
	}
}

// ErrMissingRoot is returned when no data directory is configured.
var ErrMissingRoot = errors.New("dataset: root directory not set")

// Options are the dataset options read from the "dataset" section of an
// experiment configuration.
type Options struct {
	Root      string `yaml:"root" ini:"root"`
	Split     string `yaml:"split" ini:"split"`
	Normalize *bool  `yaml:"normalize" ini:"-"`
}

// Config is implemented by the per-kind configuration structs.
type Config interface {
	Kind() Kind
}

// DuctConfig configures the duct-flow dataset.
type DuctConfig struct {
	Root string
	// Split is "train", "val" or "test"; default "train".
	Split string
	// Normalize scales node features to zero mean and unit variance;
	// default true.
	Normalize bool
}

func (DuctConfig) Kind() Kind { return KindDuct }

// Resolve builds the configuration for kind.
func Resolve(kind Kind, opts Options) (Config, error) {
	switch kind {
	case KindDuct:
		if opts.Root == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingRoot, kind)
		}
		split := opts.Split
		switch split {
		case "":
			split = "train"
		case "train", "val", "test":
		default:
			return nil, fmt.Errorf("dataset: %s: unknown split %q", kind, split)
		}
		normalize := true
		if opts.Normalize != nil {
			normalize = *opts.Normalize
		}
		return DuctConfig{Root: opts.Root, Split: split, Normalize: normalize}, nil
	default:
		return nil, &experiment.SelectorError{What: "dataset name", Name: kind.String()}
	}
}

// ResolveName parses name and resolves it in one step.
func ResolveName(name string, opts Options) (Config, error) {
	kind, err := Parse(name)
	if err != nil {
		return nil, err
	}
	return Resolve(kind, opts)
}
