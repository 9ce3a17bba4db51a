package answers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/easy-apply/internal/schemas"
	embedded "github.com/jonathan/easy-apply/schemas"
)

// Format is the encoding of an answer store file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

type document struct {
	AnswerBank     map[string]any `json:"answer_bank" validate:"required"`
	UserAssertions map[string]any `json:"user_assertions"`
}

// Load reads and validates an answer store file
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return Parse(data, FormatFromPath(path))
}

// ReadJSON reads an answer store file and returns it as JSON, converting YAML
func ReadJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return toJSON(data, FormatFromPath(path))
}

// Parse decodes an answer store document, validates it against the embedded
// schema and returns the immutable fact sets.
func Parse(data []byte, format Format) (*Store, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateEmbedded(embedded.AnswerStore, jsonData); err != nil {
		return nil, &LoadError{Message: "answer store does not match schema", Cause: err}
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Message: "failed to decode answer store", Cause: err}
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, &LoadError{Message: "invalid answer store", Cause: err}
	}

	bank, err := convert(doc.AnswerBank)
	if err != nil {
		return nil, &LoadError{Message: "invalid answer_bank", Cause: err}
	}
	assertions, err := convert(doc.UserAssertions)
	if err != nil {
		return nil, &LoadError{Message: "invalid user_assertions", Cause: err}
	}

	return &Store{
		Bank:       NewAnswerBank(bank),
		Assertions: NewUserAssertions(assertions),
	}, nil
}

func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		if !json.Valid(data) {
			return nil, &LoadError{Message: "answer store is not valid JSON"}
		}
		return data, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, &LoadError{Message: "failed to convert YAML to JSON", Cause: err}
	}
	return jsonData, nil
}

func convert(raw map[string]any) (map[string]Value, error) {
	values := make(map[string]Value, len(raw))
	for key, v := range raw {
		value, err := valueOf(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		values[key] = value
	}
	return values, nil
}
