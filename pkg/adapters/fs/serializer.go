package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Serializer defines how entity documents are encoded on disk.
type Serializer interface {
	// Ext is the file extension including the dot.
	Ext() string
	// Decode reads a file and returns the entity as JSON.
	Decode(r io.Reader) (json.RawMessage, error)
	// Encode converts the entity JSON to file bytes.
	Encode(data json.RawMessage) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by format name.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		"json": NewJSONSerializer(),
		"yaml": NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer stores entities as indented JSON, the native export shape.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Ext() string { return ".json" }

func (s *JSONSerializer) Decode(r io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid json")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *JSONSerializer) Encode(data json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer stores entities as YAML, easier to edit by hand.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Ext() string { return ".yaml" }

func (s *YAMLSerializer) Decode(r io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	out, err := json.Marshal(normalizeYAML(payload))
	if err != nil {
		return nil, fmt.Errorf("yaml document is not representable as json: %w", err)
	}
	return out, nil
}

func (s *YAMLSerializer) Encode(data json.RawMessage) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(denormalizeNumbers(payload)); err != nil {
		return nil, err
	}
	encoder.Close()
	return buf.Bytes(), nil
}

// --- Helpers ---

// denormalizeNumbers converts json.Number to int64 or float64 so YAML
// renders numbers as numbers. Epoch-millisecond timestamps stay exact.
func denormalizeNumbers(val interface{}) interface{} {
	switch v := val.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, item := range v {
			m[k] = denormalizeNumbers(item)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, item := range v {
			l[i] = denormalizeNumbers(item)
		}
		return l
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}

// normalizeYAML converts the map types yaml.v3 may produce into JSON-compatible ones.
func normalizeYAML(val interface{}) interface{} {
	switch v := val.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, item := range v {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, item := range v {
			l[i] = normalizeYAML(item)
		}
		return l
	case int:
		return json.Number(strconv.Itoa(v))
	default:
		return v
	}
}
