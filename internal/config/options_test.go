package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestModelOptionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")

	want := &ModelOptions{Options: []string{"--learning-runs", "--track-resources"}}
	if err := SaveModelOptions(path, want); err != nil {
		t.Fatalf("SaveModelOptions: %v", err)
	}

	got, err := LoadModelOptions(path)
	if err != nil {
		t.Fatalf("LoadModelOptions: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadModelOptionsMissingFileIsNotError(t *testing.T) {
	opts, err := LoadModelOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected a missing file to be treated as no overrides, got %v", err)
	}
	if len(opts.Options) != 0 {
		t.Fatalf("expected no options, got %v", opts.Options)
	}
}
