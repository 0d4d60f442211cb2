// Package scenario loads named projection inputs from YAML or JSON files.
package scenario

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/upsell/internal/model"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrUnknownFormat is returned for files that are neither YAML nor JSON.
var ErrUnknownFormat = errors.New("scenario: unknown file format")

// ErrNotFound is returned when no built-in scenario has the requested name.
var ErrNotFound = errors.New("scenario: not found")

// Scenario is a named set of inputs.
type Scenario struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Input       model.Input `yaml:"input" json:"input"`
}

// Format selects the encoding of a scenario file.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads a scenario file. Fields the file leaves out keep their value
// from base.
func Load(path string, base model.Input) (Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Scenario{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied on purpose
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}

	s, err := Parse(data, format, base)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a scenario document on top of base.
func Parse(data []byte, format Format, base model.Input) (Scenario, error) {
	s := Scenario{Input: base}
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(stripPercentSigns(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Scenario{}, err
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Scenario{}, err
		}
	default:
		return Scenario{}, ErrUnknownFormat
	}
	return s, nil
}

// Marshal encodes s in the given format.
func Marshal(s Scenario, format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(s)
	case JSON:
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, ErrUnknownFormat
	}
}

// Save writes s to path, choosing the format from the extension.
func Save(path string, s Scenario) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(s, format)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // scenario files are not secret
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// Builtin returns one of the scenarios shipped with the binary.
func Builtin(name string) (Scenario, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return Parse(data, YAML, model.DefaultInput())
}

// BuiltinNames lists the shipped scenarios in alphabetical order.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Resolve treats ref as a file path when it has a known extension and as a
// built-in scenario name otherwise.
func Resolve(ref string, base model.Input) (Scenario, error) {
	if _, err := FormatFor(ref); err == nil {
		return Load(ref, base)
	}
	return Builtin(ref)
}

var percentValue = regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)

// Rates are already stored as 0-100 percentages, so "growth_rate: 5%" only
// needs the sign dropped.
func stripPercentSigns(data []byte) []byte {
	return percentValue.ReplaceAll(data, []byte("${1}${2}"))
}
