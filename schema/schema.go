package schema

import (
	"sort"

	"github.com/wippyai/cairo-io/errors"
)

// TypeKind discriminates the Type variants.
type TypeKind uint8

const (
	KindPrimitive TypeKind = iota
	KindArray
	KindSpan
	KindStruct
)

var kindNames = [...]string{
	KindPrimitive: "Primitive",
	KindArray:     "Array",
	KindSpan:      "Span",
	KindStruct:    "Struct",
}

func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Primitive names understood by the encoder.
const (
	U8        = "u8"
	U16       = "u16"
	U32       = "u32"
	U64       = "u64"
	I8        = "i8"
	I16       = "i16"
	I32       = "i32"
	I64       = "i64"
	F64       = "F64"
	Felt252   = "felt252"
	ByteArray = "ByteArray"
	Bool      = "bool"
)

// Type is a field type. Name is set for Primitive and Struct, Item for Array and Span.
type Type struct {
	Item *Type
	Name string
	Kind TypeKind
}

func Primitive(name string) *Type { return &Type{Kind: KindPrimitive, Name: name} }

func Array(item *Type) *Type { return &Type{Kind: KindArray, Item: item} }

func Span(item *Type) *Type { return &Type{Kind: KindSpan, Item: item} }

func Struct(name string) *Type { return &Type{Kind: KindStruct, Name: name} }

// String renders the type the way it would be written in Cairo.
func (t *Type) String() string {
	switch t.Kind {
	case KindArray:
		return "Array<" + t.Item.String() + ">"
	case KindSpan:
		return "Span<" + t.Item.String() + ">"
	default:
		return t.Name
	}
}

// Field is one named member of a Record.
type Field struct {
	Type *Type
	Name string
}

// Record is an ordered field list. Order is the on-wire order.
type Record struct {
	Fields []Field
}

// Field returns the field at position i, or false past the end.
func (r *Record) Field(i int) (Field, bool) {
	if i < 0 || i >= len(r.Fields) {
		return Field{}, false
	}
	return r.Fields[i], true
}

// Schema maps record names to records and names the input and output roots.
// Output is empty when the document declares no output record.
//
// Struct references are resolved lazily: Parse does not check them, lookups
// report SchemaNotFound at first use. Validate performs the eager check.
type Schema struct {
	Records map[string]*Record
	Input   string
	Output  string
}

// Record looks up a record by name.
func (s *Schema) Record(name string) (*Record, error) {
	r, ok := s.Records[name]
	if !ok {
		return nil, errors.SchemaNotFound(errors.PhaseParse, nil, name)
	}
	return r, nil
}

// Validate checks that the roots and every Struct reference reachable from
// them resolve. It is never called implicitly.
func (s *Schema) Validate() error {
	seen := make(map[string]bool)
	roots := []string{s.Input}
	if s.Output != "" {
		roots = append(roots, s.Output)
	}
	for _, root := range roots {
		if err := s.validateRecord(root, []string{root}, seen); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateRecord(name string, path []string, seen map[string]bool) error {
	if seen[name] {
		return nil
	}
	rec, ok := s.Records[name]
	if !ok {
		return errors.SchemaNotFound(errors.PhaseParse, path, name)
	}
	seen[name] = true
	for _, f := range rec.Fields {
		if err := s.validateType(f.Type, append(append([]string{}, path...), f.Name), seen); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateType(t *Type, path []string, seen map[string]bool) error {
	switch t.Kind {
	case KindArray, KindSpan:
		return s.validateType(t.Item, path, seen)
	case KindStruct:
		return s.validateRecord(t.Name, path, seen)
	default:
		return nil
	}
}

// Names returns the record names in sorted order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Records))
	for name := range s.Records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
