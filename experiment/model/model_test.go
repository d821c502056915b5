package model

import (
	"errors"
	"testing"

	"github.com/cwbudde/alds-harness/experiment"
)

func TestParseAllKinds(t *testing.T) {
	for _, k := range All() {
		got, err := Parse(k.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", k, err)
		}
		if got != k {
			t.Fatalf("Parse(%q) = %v, want %v", k, got, k)
		}
	}
	for _, name := range []string{"FNO", " fno", "fno ", "NeuralOp"} {
		if _, err := Parse(name); !errors.Is(err, experiment.ErrInvalidSelector) {
			t.Fatalf("Parse(%q) err=%v want ErrInvalidSelector", name, err)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("resnet")
	if !errors.Is(err, experiment.ErrInvalidSelector) {
		t.Fatalf("err=%v want ErrInvalidSelector", err)
	}
	if err.Error() != "invalid model type: resnet" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		kind Kind
		want Config
	}{
		{KindFNO, FNOConfig{Modes1: 12, Modes2: 12, Width: 32}},
		{KindTEECNet, TEECNetConfig{Width: 16, NumLayers: 3}},
		{KindBENO, BENOConfig{Width: 64, NumLayers: 4}},
		{KindGraphSAGE, GraphSAGEConfig{NumLayers: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			d, err := Resolve(tt.kind, 3, 1, Options{})
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if d.Config != tt.want {
				t.Fatalf("Config = %+v, want %+v", d.Config, tt.want)
			}
			if d.Config.Kind() != tt.kind || d.Kind != tt.kind {
				t.Fatalf("kind mismatch: %v / %v", d.Kind, d.Config.Kind())
			}
			if d.InChannels != 3 || d.OutChannels != 1 {
				t.Fatalf("channels = %d/%d", d.InChannels, d.OutChannels)
			}
		})
	}
}

func TestResolveOverrides(t *testing.T) {
	d, err := Resolve(KindFNO, 1, 1, Options{Modes1: 8, Width: 64})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got := d.Config.(FNOConfig); got != (FNOConfig{Modes1: 8, Modes2: 12, Width: 64}) {
		t.Fatalf("Config = %+v", got)
	}

	d, err = Resolve(KindTEECNet, 1, 1, Options{Retrieve: true, NumLayers: 5})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got := d.Config.(TEECNetConfig); !got.Retrieve || got.NumLayers != 5 {
		t.Fatalf("Config = %+v", got)
	}
}

func TestResolveRequiredOptions(t *testing.T) {
	_, err := Resolve(KindDeepONet, 2, 1, Options{Width: 32})
	if !errors.Is(err, ErrMissingOption) {
		t.Fatalf("err=%v want ErrMissingOption", err)
	}

	d, err := Resolve(KindDeepONet, 2, 1, Options{Width: 32, TrunkSize: 3})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got := d.Config.(DeepONetConfig); got != (DeepONetConfig{TrunkSize: 3, HiddenDim: 32}) {
		t.Fatalf("Config = %+v", got)
	}

	_, err = Resolve(KindNeuralOp, 2, 1, Options{})
	if !errors.Is(err, ErrMissingOption) {
		t.Fatalf("err=%v want ErrMissingOption", err)
	}

	d, err = ResolveName("neuralop", 2, 1, Options{Width: 16, NumLayers: 4})
	if err != nil {
		t.Fatalf("ResolveName error: %v", err)
	}
	if got := d.Config.(KernelNNConfig); got != (KernelNNConfig{Width: 16, KerWidth: 16, Depth: 4}) {
		t.Fatalf("Config = %+v", got)
	}
}

func TestResolveInvalidInput(t *testing.T) {
	if _, err := Resolve(KindFNO, 0, 1, Options{}); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("err=%v want ErrInvalidChannels", err)
	}
	if _, err := Resolve(Kind(42), 1, 1, Options{}); !errors.Is(err, experiment.ErrInvalidSelector) {
		t.Fatalf("err=%v want ErrInvalidSelector", err)
	}
	if _, err := ResolveName("unet", 1, 1, Options{}); !errors.Is(err, experiment.ErrInvalidSelector) {
		t.Fatalf("err=%v want ErrInvalidSelector", err)
	}
}
