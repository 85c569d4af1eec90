package model

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// persistedModel is a stand-in estimator state for round-trip tests.
type persistedModel struct {
	Coef      []float64
	Intercept float64
	Fitted    bool
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ridge_Model.gob.gz")

	original := &persistedModel{
		Coef:      []float64{1.5, -2.25, 0},
		Intercept: 3.75,
		Fitted:    true,
	}
	if err := SaveModel(original, path); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}

	var restored persistedModel
	if err := LoadModel(&restored, path); err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}

	if len(restored.Coef) != 3 || restored.Coef[0] != 1.5 || restored.Coef[1] != -2.25 {
		t.Errorf("restored coef = %v, want %v", restored.Coef, original.Coef)
	}
	if restored.Intercept != 3.75 {
		t.Errorf("restored intercept = %v, want 3.75", restored.Intercept)
	}
	if !restored.Fitted {
		t.Error("restored model lost its fitted flag")
	}
}

func TestSaveModelReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob.gz")
	if err := os.WriteFile(path, []byte("stale contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SaveModel(&persistedModel{Intercept: 1}, path); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}

	var restored persistedModel
	if err := LoadModel(&restored, path); err != nil {
		t.Fatalf("LoadModel() after overwrite error = %v", err)
	}
	if restored.Intercept != 1 {
		t.Errorf("restored intercept = %v, want 1", restored.Intercept)
	}
}

func TestLoadModelRejectsWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_a_model.bin")
	if err := os.WriteFile(path, []byte("PKL0definitelynotamodel"), 0o644); err != nil {
		t.Fatal(err)
	}

	var restored persistedModel
	if err := LoadModel(&restored, path); err == nil {
		t.Error("LoadModel() on a non-model file should return an error")
	}
}

func TestLoadModelDetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	if err := SaveModelToWriter(&persistedModel{Intercept: 2}, &buf); err != nil {
		t.Fatalf("SaveModelToWriter() error = %v", err)
	}

	data := buf.Bytes()
	// Flip one payload byte past the 12-byte header.
	data[len(data)-1] ^= 0xFF

	var restored persistedModel
	err := LoadModelFromReader(&restored, bytes.NewReader(data))
	if err == nil {
		t.Fatal("LoadModelFromReader() on corrupted payload should return an error")
	}
	if !errors.Is(err, errors.ErrChecksumMismatch) {
		t.Errorf("error = %v, want ErrChecksumMismatch", err)
	}
}

func TestLoadModelTruncatedHeader(t *testing.T) {
	var restored persistedModel
	if err := LoadModelFromReader(&restored, bytes.NewReader([]byte{'G', 'L'})); err == nil {
		t.Error("LoadModelFromReader() on truncated input should return an error")
	}
}
