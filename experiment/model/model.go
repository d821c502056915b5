// Package model selects a surrogate-model architecture by name and resolves
// its typed configuration.
//
// The package only describes architectures; building and training networks
// is done elsewhere. Every supported kind is listed in [All] and handled by
// the single switch in [Resolve].
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/alds-harness/experiment"
)

// Kind identifies a model architecture.
type Kind int

const (
	KindFNO Kind = iota + 1
	KindTEECNet
	KindBENO
	KindDeepONet
	KindGraphSAGE
	KindNeuralOp
)

var names = map[Kind]string{
	KindFNO:       "fno",
	KindTEECNet:   "teecnet",
	KindBENO:      "beno",
	KindDeepONet:  "deeponet",
	KindGraphSAGE: "graphsage",
	KindNeuralOp:  "neuralop",
}

// All returns every supported kind in declaration order.
func All() []Kind {
	return []Kind{KindFNO, KindTEECNet, KindBENO, KindDeepONet, KindGraphSAGE, KindNeuralOp}
}

// String returns the selector name of k.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Parse maps a selector name to a Kind. Names match exactly.
func Parse(name string) (Kind, error) {
	for _, k := range All() {
		if names[k] == name {
			return k, nil
		}
	}
	return 0, &experiment.SelectorError{What: "model type", Name: name}
}

// ErrMissingOption is returned when a kind requires an option that was not
// set.
var ErrMissingOption = errors.New("model: required option not set")

// ErrInvalidChannels is returned for non-positive channel counts.
var ErrInvalidChannels = errors.New("model: channel counts must be > 0")

// Options are the architecture options read from the "model" section of a
// training configuration. Zero values mean "not set".
type Options struct {
	Width     int  `yaml:"width" ini:"width"`
	NumLayers int  `yaml:"num_layers" ini:"num_layers"`
	Modes1    int  `yaml:"modes1" ini:"modes1"`
	Modes2    int  `yaml:"modes2" ini:"modes2"`
	TrunkSize int  `yaml:"trunk_size" ini:"trunk_size"`
	Retrieve  bool `yaml:"retrieve_weight" ini:"retrieve_weight"`
}

// Config is implemented by the per-kind configuration structs.
type Config interface {
	Kind() Kind
}

// FNOConfig configures a 2D Fourier neural operator.
type FNOConfig struct {
	Modes1 int // default 12
	Modes2 int // default 12
	Width  int // default 32
}

// TEECNetConfig configures the TEECNet graph network.
type TEECNetConfig struct {
	Width     int // default 16
	NumLayers int // default 3
	// Retrieve enables the retrieval branch.
	Retrieve bool
}

// BENOConfig configures the boundary-embedded neural operator
// (heterogeneous graph network).
type BENOConfig struct {
	Width     int // default 64
	NumLayers int // default 4
}

// DeepONetConfig configures a DeepONet. TrunkSize and Width are required.
type DeepONetConfig struct {
	TrunkSize int
	HiddenDim int
}

// GraphSAGEConfig configures a GraphSAGE baseline; the depth is fixed.
type GraphSAGEConfig struct {
	NumLayers int
}

// KernelNNConfig configures the graph kernel network. Width and NumLayers
// are required; the kernel width follows Width.
type KernelNNConfig struct {
	Width    int
	KerWidth int
	Depth    int
}

func (FNOConfig) Kind() Kind       { return KindFNO }
func (TEECNetConfig) Kind() Kind   { return KindTEECNet }
func (BENOConfig) Kind() Kind      { return KindBENO }
func (DeepONetConfig) Kind() Kind  { return KindDeepONet }
func (GraphSAGEConfig) Kind() Kind { return KindGraphSAGE }
func (KernelNNConfig) Kind() Kind  { return KindNeuralOp }

// Descriptor is a fully resolved model selection.
type Descriptor struct {
	Kind        Kind
	InChannels  int
	OutChannels int
	Config      Config
}

// Resolve builds the descriptor for kind with the given channel counts.
func Resolve(kind Kind, in, out int, opts Options) (Descriptor, error) {
	if in <= 0 || out <= 0 {
		return Descriptor{}, fmt.Errorf("%w: in=%d out=%d", ErrInvalidChannels, in, out)
	}

	var cfg Config
	switch kind {
	case KindFNO:
		cfg = FNOConfig{
			Modes1: orDefault(opts.Modes1, 12),
			Modes2: orDefault(opts.Modes2, 12),
			Width:  orDefault(opts.Width, 32),
		}
	case KindTEECNet:
		cfg = TEECNetConfig{
			Width:     orDefault(opts.Width, 16),
			NumLayers: orDefault(opts.NumLayers, 3),
			Retrieve:  opts.Retrieve,
		}
	case KindBENO:
		cfg = BENOConfig{
			Width:     orDefault(opts.Width, 64),
			NumLayers: orDefault(opts.NumLayers, 4),
		}
	case KindDeepONet:
		if err := require(kind, option{"trunk_size", opts.TrunkSize}, option{"width", opts.Width}); err != nil {
			return Descriptor{}, err
		}
		cfg = DeepONetConfig{TrunkSize: opts.TrunkSize, HiddenDim: opts.Width}
	case KindGraphSAGE:
		cfg = GraphSAGEConfig{NumLayers: 5}
	case KindNeuralOp:
		if err := require(kind, option{"width", opts.Width}, option{"num_layers", opts.NumLayers}); err != nil {
			return Descriptor{}, err
		}
		cfg = KernelNNConfig{Width: opts.Width, KerWidth: opts.Width, Depth: opts.NumLayers}
	default:
		return Descriptor{}, &experiment.SelectorError{What: "model type", Name: kind.String()}
	}

	return Descriptor{Kind: kind, InChannels: in, OutChannels: out, Config: cfg}, nil
}

// ResolveName parses name and resolves it in one step.
func ResolveName(name string, in, out int, opts Options) (Descriptor, error) {
	kind, err := Parse(name)
	if err != nil {
		return Descriptor{}, err
	}
	return Resolve(kind, in, out, opts)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

type option struct {
	name  string
	value int
}

// require reports every option that is not set.
func require(kind Kind, opts ...option) error {
	var missing []string
	for _, o := range opts {
		if o.value <= 0 {
			missing = append(missing, o.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %s", ErrMissingOption, kind, strings.Join(missing, ", "))
	}
	return nil
}
