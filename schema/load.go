package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/cairo-io/errors"
)

const (
	keySchemas = "schemas"
	keyInput   = "cairo_input"
	keyOutput  = "cairo_output"
	keyFields  = "fields"

	keyType     = "type"
	keyName     = "name"
	keyItemType = "item_type"
)

// Load reads and parses a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseFailed("schema file "+path, err)
	}
	return Parse(data)
}

// Parse parses a YAML (or JSON) schema document:
//
//	schemas:
//	  Input:
//	    fields:
//	      - request:
//	          type: Primitive
//	          name: u32
//	cairo_input: Input
//	cairo_output: null
//
// Struct references are not resolved here; see Schema.Validate.
func Parse(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.ParseFailed("schema", err)
	}
	s, err := parseDocument(&root)
	if err != nil {
		return nil, errors.ParseFailed("schema", err)
	}
	return s, nil
}

func parseDocument(root *yaml.Node) (*Schema, error) {
	node := root
	if node.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: schema document must be a mapping", node.Line)
	}

	s := &Schema{}
	seen := make(map[string]bool, 3)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case keySchemas:
			records, err := parseRecords(val)
			if err != nil {
				return nil, err
			}
			s.Records = records
		case keyInput:
			name, err := parseRootName(val, false)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", keyInput, err)
			}
			s.Input = name
		case keyOutput:
			name, err := parseRootName(val, true)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", keyOutput, err)
			}
			s.Output = name
		default:
			continue
		}
		seen[key.Value] = true
	}

	for _, k := range []string{keySchemas, keyInput, keyOutput} {
		if !seen[k] {
			return nil, fmt.Errorf("missing required key %q", k)
		}
	}
	return s, nil
}

func parseRootName(node *yaml.Node, nullable bool) (string, error) {
	if isNull(node) {
		if nullable {
			return "", nil
		}
		return "", fmt.Errorf("line %d: record name must not be null", node.Line)
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: record name must be a string", node.Line)
	}
	return node.Value, nil
}

func parseRecords(node *yaml.Node) (map[string]*Record, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping", node.Line, keySchemas)
	}
	records := make(map[string]*Record, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		rec, err := parseRecord(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", name, err)
		}
		records[name] = rec
	}
	return records, nil
}

func parseRecord(node *yaml.Node) (*Record, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: record must be a mapping", node.Line)
	}
	var fields *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == keyFields {
			fields = node.Content[i+1]
		}
	}
	if fields == nil {
		return nil, fmt.Errorf("line %d: missing %q", node.Line, keyFields)
	}
	if fields.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must be a sequence", fields.Line, keyFields)
	}

	rec := &Record{Fields: make([]Field, 0, len(fields.Content))}
	for _, fn := range fields.Content {
		f, err := parseField(fn)
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec, nil
}

// parseField reads a single-key mapping {name: type}.
func parseField(node *yaml.Node) (Field, error) {
	if node.Kind != yaml.MappingNode {
		return Field{}, fmt.Errorf("line %d: field must be a mapping", node.Line)
	}
	switch len(node.Content) {
	case 0:
		return Field{}, fmt.Errorf("line %d: expected at least one key-value pair", node.Line)
	case 2:
	default:
		return Field{}, fmt.Errorf("line %d: expected only one key per field", node.Line)
	}
	name := node.Content[0].Value
	ty, err := parseType(node.Content[1])
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", name, err)
	}
	return Field{Name: name, Type: ty}, nil
}

// parseType reads a {type, name} or {type, item_type} mapping.
func parseType(node *yaml.Node) (*Type, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: type must be a mapping", node.Line)
	}
	var tag, name string
	var itemType *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case keyType, keyName:
			if val.Kind != yaml.ScalarNode || isNull(val) {
				return nil, fmt.Errorf("line %d: %s must be a string", val.Line, key.Value)
			}
			if key.Value == keyType {
				tag = val.Value
			} else {
				name = val.Value
			}
		case keyItemType:
			itemType = val
		}
	}

	switch tag {
	case "Primitive", "Struct":
		if name == "" {
			return nil, fmt.Errorf("line %d: %s type requires name", node.Line, tag)
		}
		if tag == "Primitive" {
			return Primitive(name), nil
		}
		return Struct(name), nil
	case "Array", "Span":
		if itemType == nil || isNull(itemType) {
			return nil, fmt.Errorf("line %d: %s type requires item_type", node.Line, tag)
		}
		item, err := parseType(itemType)
		if err != nil {
			return nil, err
		}
		if tag == "Array" {
			return Array(item), nil
		}
		return Span(item), nil
	case "":
		return nil, fmt.Errorf("line %d: missing type tag", node.Line)
	default:
		return nil, fmt.Errorf("line %d: unknown type tag %q", node.Line, tag)
	}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
