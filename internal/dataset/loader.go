package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the encoding of a dataset file.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the dataset format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads, validates, and decodes the dataset at path.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	return parse(data, format, path)
}

// Parse validates and decodes an in-memory dataset document.
func Parse(data []byte, format Format) (*Dataset, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, source string) (*Dataset, error) {
	if problems := checkSchema(data, format); len(problems) > 0 {
		return nil, &ValidationError{Source: source, Problems: problems}
	}

	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = decodeJSON(data)
	case FormatYAML:
		ds, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &ValidationError{Source: source, Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}

	if err := ds.Validate(); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Source = source
		}
		return nil, err
	}
	return ds, nil
}
