package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // schema/registry/fixture loading
	PhaseEncode  Phase = "encode"  // JSON to felts
	PhaseDecode  Phase = "decode"  // VM values to JSON
	PhaseFlatten Phase = "flatten" // VM values to serialized felts
	PhaseConfig  Phase = "config"  // manifest and environment
	PhaseRuntime Phase = "runtime" // program execution and hooks
)

// Kind categorizes the error
type Kind string

const (
	KindJSONParse          Kind = "json_parse"
	KindNotFound           Kind = "not_found"
	KindFieldMissing       Kind = "field_missing"
	KindTypeMismatch       Kind = "type_mismatch"
	KindUnknownPrimitive   Kind = "unknown_primitive"
	KindMalformedByteArray Kind = "malformed_byte_array"
	KindInvalidData        Kind = "invalid_data"
	KindInvalidUTF8        Kind = "invalid_utf8"
	KindOverflow           Kind = "overflow"
	KindDesync             Kind = "desync"
	KindUnsupported        Kind = "unsupported"
	KindInvalidInput       Kind = "invalid_input"
	KindHook               Kind = "hook"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Got      string
	Expected string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Got != "" || e.Expected != "" {
		b.WriteString(": ")
		switch {
		case e.Got != "" && e.Expected != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Got)
		case e.Expected != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		default:
			b.WriteString("got ")
			b.WriteString(e.Got)
		}
	}

	if e.Detail != "" {
		if e.Got != "" || e.Expected != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Got sets the description of the offending input
func (b *Builder) Got(t string) *Builder {
	b.err.Got = t
	return b
}

// Expected sets the description of what was required
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Encoder taxonomy

// JSONParse reports input that is not valid JSON
func JSONParse(cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindJSONParse,
		Detail: "failed to parse JSON",
		Cause:  cause,
	}
}

// SchemaNotFound reports a record name absent from the schema
func SchemaNotFound(phase Phase, path []string, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: fmt.Sprintf("schema %q not found", name),
		Value:  name,
	}
}

// MissingField reports a schema field absent from the JSON object
func MissingField(path []string, field, record string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("missing field %q from schema %q", field, record),
		Value:  field,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, got, expected string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Got:      got,
		Expected: expected,
	}
}

// UnknownPrimitive reports a primitive name the encoder does not know
func UnknownPrimitive(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownPrimitive,
		Path:   path,
		Detail: fmt.Sprintf("unknown primitive type %q", name),
		Value:  name,
	}
}

// MalformedByteArray reports a string that cannot be chunked into a ByteArray
func MalformedByteArray(path []string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindMalformedByteArray,
		Path:   path,
		Detail: "error parsing ByteArray",
		Cause:  cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Path:     path,
		Expected: target,
		Detail:   fmt.Sprintf("value %v overflows %s", value, target),
		Value:    value,
	}
}

// Desync reports a VM value stream that no longer matches the declared type.
// Decoders panic with it; callers must not try to continue.
func Desync(phase Phase, path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindDesync,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Hook reports a failed pre/post-processing call
func Hook(url string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindHook,
		Detail: fmt.Sprintf("call %s", url),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
