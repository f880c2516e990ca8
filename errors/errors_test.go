package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseEncode,
				Kind:     KindTypeMismatch,
				Path:     []string{"request", "inner", "value"},
				Got:      "string",
				Expected: "u32",
				Detail:   "expected unsigned integer",
			},
			contains: []string{"[encode]", "type_mismatch", "request.inner.value", "string", "u32", "expected unsigned integer"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindDesync,
			},
			contains: []string{"[decode]", "desync"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidData,
				Detail: "parse schema",
				Cause:  errors.New("yaml: line 3"),
			},
			contains: []string{"[parse]", "invalid_data", "parse schema", "caused by", "yaml: line 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := JSONParse(cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := MissingField([]string{"request"}, "amount", "Input")

	if !errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindFieldMissing}) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindFieldMissing}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("user", "age").
		Got("string").
		Expected("u32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "u32", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "user" || err.Path[1] != "age" {
		t.Errorf("Path = %v, want [user age]", err.Path)
	}
	if err.Got != "string" || err.Expected != "u32" {
		t.Errorf("Got=%v Expected=%v", err.Got, err.Expected)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected u32, got string" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MissingField", func(t *testing.T) {
		err := MissingField(nil, "optional", "Input")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Error(), `"optional"`) || !strings.Contains(err.Error(), `"Input"`) {
			t.Errorf("message should name field and record: %s", err)
		}
	})

	t.Run("SchemaNotFound", func(t *testing.T) {
		err := SchemaNotFound(PhaseDecode, nil, "Nested")
		if err.Kind != KindNotFound || err.Phase != PhaseDecode {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Value != "Nested" {
			t.Errorf("Value = %v", err.Value)
		}
	})

	t.Run("UnknownPrimitive", func(t *testing.T) {
		err := UnknownPrimitive([]string{"x"}, "u256")
		if err.Kind != KindUnknownPrimitive {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Error(), "u256") {
			t.Errorf("message should contain primitive name: %s", err)
		}
	})

	t.Run("MalformedByteArray", func(t *testing.T) {
		err := MalformedByteArray(nil, errors.New("bad"))
		if err.Kind != KindMalformedByteArray {
			t.Errorf("Kind = %v", err.Kind)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseDecode, nil, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "fffe") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseDecode, []string{"val"}, "0x1", "u128")
		if err.Kind != KindOverflow || err.Expected != "u128" {
			t.Errorf("got %v expected=%v", err.Kind, err.Expected)
		}
	})

	t.Run("Desync", func(t *testing.T) {
		err := Desync(PhaseDecode, []string{"[0]"}, "malformed enum padding at %d", 2)
		if err.Kind != KindDesync {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Detail != "malformed enum padding at 2" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Hook", func(t *testing.T) {
		err := Hook("http://localhost:3000/preprocess", errors.New("refused"))
		if err.Kind != KindHook || err.Phase != PhaseRuntime {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})
}
