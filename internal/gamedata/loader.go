package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
// Unknown fields are rejected so typos in data files surface at startup.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := Decode(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Decode strictly unmarshals raw JSON into v.
func Decode(content []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
// Use this for data that must be present for a battle to start.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
