package schema

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/cairo-io/errors"
)

const complexSchema = `
schemas:
    Input:
        fields:
            - request:
                type: Struct
                name: MyStruct
    MyStruct:
        fields:
            - n:
                type: Primitive
                name: i64
            - m:
                type: Span
                item_type:
                    type: Primitive
                    name: i32
            - o:
                type: Struct
                name: Nest
    Nest:
        fields:
            - y:
                type: Primitive
                name: u32
            - z:
                type: Array
                item_type:
                    type: Primitive
                    name: i32
cairo_input: Input
cairo_output: MyStruct
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(complexSchema))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Input != "Input" || s.Output != "MyStruct" {
		t.Errorf("roots = %q/%q", s.Input, s.Output)
	}
	if len(s.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(s.Records))
	}

	rec, err := s.Record("MyStruct")
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"n", "m", "o"}
	wantTypes := []string{"i64", "Span<i32>", "Nest"}
	for i, f := range rec.Fields {
		if f.Name != wantNames[i] {
			t.Errorf("field %d name = %s, want %s", i, f.Name, wantNames[i])
		}
		if got := f.Type.String(); got != wantTypes[i] {
			t.Errorf("field %d type = %s, want %s", i, got, wantTypes[i])
		}
	}
	if rec.Fields[1].Type.Kind != KindSpan || rec.Fields[2].Type.Kind != KindStruct {
		t.Errorf("unexpected kinds %v/%v", rec.Fields[1].Type.Kind, rec.Fields[2].Type.Kind)
	}

	nest, _ := s.Record("Nest")
	if nest.Fields[1].Type.Kind != KindArray || nest.Fields[1].Type.Item.Name != I32 {
		t.Errorf("Nest.z = %s", nest.Fields[1].Type)
	}
}

func TestParseNullOutput(t *testing.T) {
	doc := `
schemas:
    Input:
        fields:
            - request:
                type: Primitive
                name: u32
cairo_input: Input
cairo_output: null
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if s.Output != "" {
		t.Errorf("Output = %q, want empty", s.Output)
	}
}

func TestParseListFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "array of primitives",
			doc: `
schemas:
    Input:
        fields:
            - request:
                type: Array
                item_type:
                    type: Primitive
                    name: i32
cairo_input: Input
cairo_output: null
`,
			want: "Array<i32>",
		},
		{
			name: "span of structs",
			doc: `
schemas:
    Point:
        fields:
            - x:
                type: Primitive
                name: u32
    Input:
        fields:
            - points:
                type: Span
                item_type:
                    type: Struct
                    name: Point
cairo_input: Input
cairo_output: null
`,
			want: "Span<Point>",
		},
		{
			name: "nested",
			doc: `
schemas:
    Input:
        fields:
            - grid:
                type: Array
                item_type:
                    type: Span
                    item_type:
                        type: Primitive
                        name: felt252
cairo_input: Input
cairo_output: null
`,
			want: "Array<Span<felt252>>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Validate(); err != nil {
				t.Fatal(err)
			}
			if got := s.Records["Input"].Fields[0].Type.String(); got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseJSONDocument(t *testing.T) {
	doc := `{"schemas": {"Out": {"fields": [{"value": {"type": "Primitive", "name": "u32"}}]}},
	"cairo_input": "Out", "cairo_output": "Out"}`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records["Out"].Fields) != 1 {
		t.Error("expected one field")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{
			name: "two keys in one field",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: Primitive
                name: u32
              b:
                type: Primitive
                name: u32
cairo_input: Input
cairo_output: null
`,
			message: "only one key per field",
		},
		{
			name: "empty field",
			doc: `
schemas:
    Input:
        fields:
            - {}
cairo_input: Input
cairo_output: null
`,
			message: "at least one key-value pair",
		},
		{
			name: "missing schemas",
			doc: `
cairo_input: Input
cairo_output: null
`,
			message: `"schemas"`,
		},
		{
			name: "missing input",
			doc: `
schemas: {}
cairo_output: null
`,
			message: `"cairo_input"`,
		},
		{
			name: "missing output",
			doc: `
schemas: {}
cairo_input: Input
`,
			message: `"cairo_output"`,
		},
		{
			name: "unknown tag",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: Tuple
cairo_input: Input
cairo_output: null
`,
			message: `unknown type tag "Tuple"`,
		},
		{
			name: "array without item",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: Array
cairo_input: Input
cairo_output: null
`,
			message: "requires item_type",
		},
		{
			name: "scalar item type",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: Span
                item_type: u32
cairo_input: Input
cairo_output: null
`,
			message: "type must be a mapping",
		},
		{
			name: "type tag not a string",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: [Array]
cairo_input: Input
cairo_output: null
`,
			message: "type must be a string",
		},
		{
			name: "primitive without name",
			doc: `
schemas:
    Input:
        fields:
            - a:
                type: Primitive
cairo_input: Input
cairo_output: null
`,
			message: "requires name",
		},
		{
			name: "record without fields",
			doc: `
schemas:
    Input: {}
cairo_input: Input
cairo_output: null
`,
			message: `missing "fields"`,
		},
		{
			name:    "not yaml",
			doc:     "schemas: [unclosed",
			message: "parse schema",
		},
		{
			name:    "empty document",
			doc:     "",
			message: "empty document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidData}) {
				t.Errorf("expected parse error, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err, tt.message)
			}
		})
	}
}

func TestParseDefersReferenceValidation(t *testing.T) {
	doc := `
schemas:
    Input:
        fields:
            - a:
                type: Struct
                name: Missing
cairo_input: Input
cairo_output: null
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse should not resolve references: %v", err)
	}

	err = s.Validate()
	if err == nil {
		t.Fatal("Validate should report the dangling reference")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindNotFound}) {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "Input.a") {
		t.Errorf("error should carry the path: %v", err)
	}
}

func TestValidate(t *testing.T) {
	s, err := Parse([]byte(complexSchema))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	s.Output = "Nowhere"
	if err := s.Validate(); err == nil {
		t.Error("missing output root should fail validation")
	}
}

func TestValidateRecursiveRecord(t *testing.T) {
	s := &Schema{
		Input: "Node",
		Records: map[string]*Record{
			"Node": {Fields: []Field{
				{Name: "value", Type: Primitive(U32)},
				{Name: "children", Type: Span(Struct("Node"))},
			}},
		},
	}
	if err := s.Validate(); err != nil {
		t.Errorf("self-referencing record should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cairo_schema.yaml")
	if err := os.WriteFile(path, []byte(complexSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Names(); strings.Join(got, ",") != "Input,MyStruct,Nest" {
		t.Errorf("Names() = %v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestTypeKindString(t *testing.T) {
	if KindSpan.String() != "Span" || TypeKind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
