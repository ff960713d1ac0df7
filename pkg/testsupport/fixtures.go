// Package testsupport loads markdown fixtures and Block Kit golden files for
// package tests.
package testsupport

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

// UpdateGoldenEnv names the environment variable that rewrites golden files
// from the current output instead of comparing against them.
const UpdateGoldenEnv = "SLACKMD_UPDATE_GOLDEN"

// LoadFixture reads a fixture file, failing the test when it is missing.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// LoadGolden decodes the JSON golden file at path into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// AssertGolden compares the JSON encoding of got with the golden file at path.
// Both sides are normalised through a generic decode so key order and
// indentation do not matter.
func AssertGolden(t testing.TB, path string, got any) {
	t.Helper()

	encoded, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("encode output: %v", err)
	}
	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		return
	}

	var want any
	if err := LoadGolden(path, &want); err != nil {
		t.Fatalf("load golden %s: %v", path, err)
	}
	var actual any
	if err := json.Unmarshal(encoded, &actual); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(actual)
	if !bytes.Equal(wantJSON, gotJSON) {
		t.Fatalf("golden mismatch for %s\nwant: %s\ngot:  %s", path, wantJSON, gotJSON)
	}
}
