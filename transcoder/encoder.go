package transcoder

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-io/bytearray"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/transcoder/internal/abi"
)

// Local wrappers for abi package functions
var (
	typeName       = abi.TypeName
	coerceToUint64 = abi.CoerceToUint64
	coerceToInt64  = abi.CoerceToInt64
)

// Encoder turns JSON arguments into Cairo function arguments.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeJSON parses data and encodes it against the schema's input record.
func (e *Encoder) EncodeJSON(data []byte, s *schema.Schema) (FuncArgs, error) {
	value, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return e.Encode(value, s)
}

// ParseJSON decodes one JSON document, keeping numbers as json.Number.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, errors.JSONParse(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.JSONParse(fmt.Errorf("trailing data after JSON value"))
	}
	return value, nil
}

// Encode encodes an already parsed JSON value (maps, slices, json.Number,
// float64, string, bool). An empty object encodes to no arguments; anything
// else becomes a single array argument holding the input record's felts.
func (e *Encoder) Encode(value any, s *schema.Schema) (FuncArgs, error) {
	if s == nil {
		return nil, errors.SchemaNotFound(errors.PhaseEncode, nil, "input")
	}
	if obj, ok := value.(map[string]any); ok && len(obj) == 0 {
		return FuncArgs{}, nil
	}

	flat := make([]felt.Felt, 0, 16)
	if err := e.flattenRecord(value, s.Input, s, &flat, nil); err != nil {
		return nil, err
	}

	Logger().Debug("encoded arguments",
		zap.String("record", s.Input),
		zap.Int("felts", len(flat)))
	return FuncArgs{ArrayArg(flat)}, nil
}

func (e *Encoder) flattenRecord(value any, name string, s *schema.Schema, flat *[]felt.Felt, path []string) error {
	rec, err := s.Record(name)
	if err != nil {
		return errors.SchemaNotFound(errors.PhaseEncode, path, name)
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "object for schema "+name)
	}

	for _, field := range rec.Fields {
		v, ok := obj[field.Name]
		if !ok {
			return errors.MissingField(path, field.Name, name)
		}
		if err := e.flattenValue(v, field.Type, s, flat, childPath(path, field.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) flattenValue(value any, t *schema.Type, s *schema.Schema, flat *[]felt.Felt, path []string) error {
	switch t.Kind {
	case schema.KindPrimitive:
		return e.flattenPrimitive(value, t.Name, flat, path)
	case schema.KindArray, schema.KindSpan:
		return e.flattenList(value, t.Item, s, flat, path)
	case schema.KindStruct:
		return e.flattenRecord(value, t.Name, s, flat, path)
	default:
		return errors.Unsupported(errors.PhaseEncode, "schema type "+t.Kind.String())
	}
}

func (e *Encoder) flattenList(value any, item *schema.Type, s *schema.Schema, flat *[]felt.Felt, path []string) error {
	items, ok := value.([]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "array")
	}
	*flat = append(*flat, felt.FromUint64(uint64(len(items))))
	for i, v := range items {
		if err := e.flattenValue(v, item, s, flat, indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) flattenPrimitive(value any, name string, flat *[]felt.Felt, path []string) error {
	switch name {
	case schema.U8, schema.U16, schema.U32, schema.U64:
		return e.flattenUnsigned(value, name, flat, path)
	case schema.I8, schema.I16, schema.I32, schema.I64:
		return e.flattenSigned(value, name, flat, path)
	case schema.F64:
		return e.flattenF64(value, flat, path)
	case schema.Felt252:
		return e.flattenFelt252(value, flat, path)
	case schema.ByteArray:
		return e.flattenByteArray(value, flat, path)
	case schema.Bool:
		return e.flattenBool(value, flat, path)
	default:
		return errors.UnknownPrimitive(path, name)
	}
}

// flattenUnsigned accepts any non-negative integer that fits 64 bits. The
// declared width is a label only.
func (e *Encoder) flattenUnsigned(value any, name string, flat *[]felt.Felt, path []string) error {
	v, ok := coerceToUint64(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "unsigned integer for "+name)
	}
	*flat = append(*flat, felt.FromUint64(v))
	return nil
}

func (e *Encoder) flattenSigned(value any, name string, flat *[]felt.Felt, path []string) error {
	v, ok := coerceToInt64(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "signed integer for "+name)
	}
	*flat = append(*flat, felt.FromInt64(v))
	return nil
}

func (e *Encoder) flattenF64(value any, flat *[]felt.Felt, path []string) error {
	r, ok := abi.CoerceToFloat64(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "float for F64")
	}
	scaled, ok := abi.ToFixedPoint(r)
	if !ok {
		return errors.Overflow(errors.PhaseEncode, path, r, "F64")
	}
	*flat = append(*flat, felt.FromBigInt(scaled))
	return nil
}

// flattenFelt252 parses decimal and 0x-prefixed strings as numbers and packs
// any other string as a short string of at most 31 bytes.
func (e *Encoder) flattenFelt252(value any, flat *[]felt.Felt, path []string) error {
	s, ok := value.(string)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "string for felt252")
	}

	if abi.IsValidNumber(s) || abi.HasHexPrefix(s) {
		f, err := felt.Parse(s)
		if err != nil {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Cause(err).
				Detail("invalid felt252 %q", s).
				Build()
		}
		*flat = append(*flat, f)
		return nil
	}

	f, err := bytearray.ShortString(s)
	if err != nil {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("invalid felt252 short string").
			Build()
	}
	*flat = append(*flat, f)
	return nil
}

func (e *Encoder) flattenByteArray(value any, flat *[]felt.Felt, path []string) error {
	s, ok := value.(string)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "string for ByteArray")
	}
	ba, err := bytearray.FromString(s)
	if err != nil {
		return errors.MalformedByteArray(path, err)
	}
	*flat = append(*flat, ba.Felts()...)
	return nil
}

func (e *Encoder) flattenBool(value any, flat *[]felt.Felt, path []string) error {
	v, ok := value.(bool)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "boolean")
	}
	if v {
		*flat = append(*flat, felt.One())
	} else {
		*flat = append(*flat, felt.Zero())
	}
	return nil
}
