// Package experiment defines the command-line level description of an ALDS
// experiment run and the errors shared by the model and dataset selectors.
package experiment

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSelector matches every error returned for an unrecognized model
// or dataset name.
var ErrInvalidSelector = errors.New("invalid selector")

// SelectorError reports an unrecognized model or dataset name.
type SelectorError struct {
	// What is "model type" or "dataset name".
	What string
	Name string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.What, e.Name)
}

// Is reports whether target is ErrInvalidSelector.
func (e *SelectorError) Is(target error) bool {
	return target == ErrInvalidSelector
}

// Args are the experiment options accepted on the command line.
type Args struct {
	Dataset     string `yaml:"dataset"`
	Encoder     string `yaml:"encoder"`
	Classifier  string `yaml:"classifier"`
	Model       string `yaml:"model"`
	ExpName     string `yaml:"exp_name"`
	Mode        string `yaml:"mode"`
	ExpConfig   string `yaml:"exp_config"`
	TrainConfig string `yaml:"train_config"`
}

// DefaultArgs returns the defaults used when a flag is not given.
func DefaultArgs() Args {
	return Args{
		Dataset:     "duct",
		Encoder:     "pca",
		Classifier:  "kmeans",
		Model:       "neuralop",
		ExpName:     "collection_duct_neuralop",
		Mode:        "pred",
		ExpConfig:   "configs/exp_config/teecnet_duct.yaml",
		TrainConfig: "configs/train_config/teecnet.yaml",
	}
}

// StampLayout formats run timestamps as month-day-hour-minute.
const StampLayout = "01-02-15-04"

// Stamp formats t in local time using [StampLayout].
func Stamp(t time.Time) string {
	return t.Local().Format(StampLayout)
}

// Now returns the run timestamp for the current time.
func Now() string {
	return Stamp(time.Now())
}
