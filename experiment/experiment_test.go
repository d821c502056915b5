package experiment

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultArgs(t *testing.T) {
	a := DefaultArgs()
	tests := []struct {
		name, got, want string
	}{
		{"dataset", a.Dataset, "duct"},
		{"encoder", a.Encoder, "pca"},
		{"classifier", a.Classifier, "kmeans"},
		{"model", a.Model, "neuralop"},
		{"exp_name", a.ExpName, "collection_duct_neuralop"},
		{"mode", a.Mode, "pred"},
		{"exp_config", a.ExpConfig, "configs/exp_config/teecnet_duct.yaml"},
		{"train_config", a.TrainConfig, "configs/train_config/teecnet.yaml"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestStamp(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 30, 0, time.Local)
	if got := Stamp(ts); got != "03-07-09-05" {
		t.Fatalf("Stamp = %q, want %q", got, "03-07-09-05")
	}
	if len(Now()) != len(StampLayout) {
		t.Fatalf("Now() = %q has unexpected length", Now())
	}
}

func TestSelectorError(t *testing.T) {
	var err error = &SelectorError{What: "model type", Name: "resnet"}
	if err.Error() != "invalid model type: resnet" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidSelector) {
		t.Fatal("expected errors.Is(err, ErrInvalidSelector)")
	}

	var se *SelectorError
	wrapped := errors.Join(errors.New("ctx"), err)
	if !errors.As(wrapped, &se) || se.Name != "resnet" {
		t.Fatalf("errors.As failed: %v", se)
	}
}
