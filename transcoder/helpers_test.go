package transcoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/transcoder/internal/layout"
	"github.com/wippyai/cairo-io/vm"
)

func ints(vs ...int64) []vm.MaybeRelocatable {
	out := make([]vm.MaybeRelocatable, len(vs))
	for i, v := range vs {
		out[i] = vm.IntFromInt64(v)
	}
	return out
}

// tag is the stored enum tag of variant idx out of n.
func tag(idx, n int) int64 {
	return int64(layout.Tag(idx, n))
}

func felts(vs ...int64) []felt.Felt {
	out := make([]felt.Felt, len(vs))
	for i, v := range vs {
		out[i] = felt.FromInt64(v)
	}
	return out
}

// putSegment stores vals in a fresh segment and returns the (start, end) pointer pair.
func putSegment(t *testing.T, mem *vm.Memory, vals ...vm.MaybeRelocatable) []vm.MaybeRelocatable {
	t.Helper()
	base := mem.AddSegment()
	end, err := mem.Load(base, vals)
	if err != nil {
		t.Fatal(err)
	}
	return []vm.MaybeRelocatable{vm.FromRelocatable(base), vm.FromRelocatable(end)}
}

func concat(parts ...[]vm.MaybeRelocatable) []vm.MaybeRelocatable {
	var out []vm.MaybeRelocatable
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func record(fields ...schema.Field) *schema.Record {
	return &schema.Record{Fields: fields}
}

func field(name string, t *schema.Type) schema.Field {
	return schema.Field{Name: name, Type: t}
}

// mustDesync runs fn and fails unless it panics with a desync error.
func mustDesync(t *testing.T, fn func()) *errors.Error {
	t.Helper()
	var got *errors.Error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected desync panic")
			}
			err, ok := r.(*errors.Error)
			if !ok {
				t.Fatalf("panic value %T: %v", r, r)
			}
			if err.Kind != errors.KindDesync {
				t.Fatalf("panic kind = %s, want desync", err.Kind)
			}
			got = err
		}()
		fn()
	}()
	return got
}

func isKind(err error, phase errors.Phase, kind errors.Kind) bool {
	return stderrors.Is(err, &errors.Error{Phase: phase, Kind: kind})
}
