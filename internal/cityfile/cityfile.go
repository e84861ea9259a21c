// Package cityfile loads city lists from the JSON document format the CLI
// consumes. The engine itself performs no file I/O.
package cityfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tourgene/internal/model"
)

type rawCity struct {
	X     float64 `json:"x_coord"`
	Y     float64 `json:"y_coord"`
	Label any     `json:"label"`
}

type document struct {
	Cities []rawCity `json:"cities"`
}

// Load reads a city list document from path.
func Load(path string) ([]model.City, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cities, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cities, nil
}

// Parse decodes a {"cities": [...]} document. Labels may be JSON strings or
// numbers; numbers keep their literal decimal rendering.
func Parse(r io.Reader) ([]model.City, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("city list is empty")
	}

	cities := make([]model.City, 0, len(doc.Cities))
	for i, raw := range doc.Cities {
		label, err := labelString(raw.Label)
		if err != nil {
			return nil, fmt.Errorf("city %d: %w", i, err)
		}
		cities = append(cities, model.City{X: raw.X, Y: raw.Y, Label: label})
	}
	return cities, nil
}

func labelString(v any) (string, error) {
	switch value := v.(type) {
	case string:
		if value == "" {
			return "", fmt.Errorf("label must not be empty")
		}
		return value, nil
	case json.Number:
		return value.String(), nil
	case nil:
		return "", fmt.Errorf("label is required")
	default:
		return "", fmt.Errorf("unsupported label type %T", v)
	}
}
