package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ghprofile/pkg/errors"
	"github.com/matzehuels/ghprofile/pkg/profile"
)

// Format is a report serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported report format %q (use json or yaml)", s)
	}
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer report format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

// WriteJSON encodes p as indented JSON.
func WriteJSON(p *profile.Profile, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes p as YAML.
func WriteYAML(p *profile.Profile, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes p in format f.
func Write(p *profile.Profile, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(p, w)
	case FormatYAML:
		return WriteYAML(p, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported report format %q", f)
	}
}

// ReadJSON decodes a JSON report.
func ReadJSON(r io.Reader) (*profile.Profile, error) {
	var p profile.Profile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadYAML decodes a YAML report.
func ReadYAML(r io.Reader) (*profile.Profile, error) {
	var p profile.Profile
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Read decodes a report in format f.
func Read(r io.Reader, f Format) (*profile.Profile, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported report format %q", f)
	}
}

// Export writes p to path in the format implied by its extension.
func Export(p *profile.Profile, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(p, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Import reads the report at path in the format implied by its extension.
func Import(path string) (*profile.Profile, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	p, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func validate(p *profile.Profile) error {
	if p.Username == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "report has no username")
	}
	return nil
}
