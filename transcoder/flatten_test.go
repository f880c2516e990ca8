package transcoder

import (
	"strings"
	"testing"

	"github.com/wippyai/cairo-io/bytearray"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/vm"
)

func TestFlattenNilReturnType(t *testing.T) {
	out := NewFlattener().Flatten(nil, vm.NewMemory(), nil, sierra.Types{}, sierra.TypeSizes{})
	if out == nil || len(out) != 0 {
		t.Errorf("Flatten(nil type) = %v, want empty slice", out)
	}
}

func TestFlatten(t *testing.T) {
	b := sierra.NewBuilder()
	u8 := b.Scalar(sierra.KindUint8)
	felt252 := b.Felt252()
	pair := b.Struct("app::Pair", u8, felt252)
	shape := b.Enum("app::Shape", pair, u8, b.Unit())
	mem := vm.NewMemory()

	tests := []struct {
		name string
		id   sierra.TypeID
		vals []vm.MaybeRelocatable
		want []felt.Felt
	}{
		{"scalar", u8, ints(7), felts(7)},
		{"signed keeps felt", b.Scalar(sierra.KindSint16), ints(-3), felts(-3)},
		{"struct", pair, ints(1, 2), felts(1, 2)},
		{"array", b.Array(u8), putSegment(t, mem, ints(4, 5, 6)...), felts(3, 4, 5, 6)},
		{"empty array", b.Array(u8), putSegment(t, mem), felts(0)},
		{"array of structs", b.Array(pair), putSegment(t, mem, ints(1, 2, 3, 4)...), felts(2, 1, 2, 3, 4)},
		{"enum largest", shape, ints(tag(0, 3), 8, 9), felts(0, 8, 9)},
		{"enum padded", shape, ints(tag(1, 3), 0, 5), felts(1, 5)},
		{"enum unit", shape, ints(tag(2, 3), 0, 0), felts(2)},
		{"panic result", b.PanicResult(pair), ints(1, 2), felts(1, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := tc.id
			got := NewFlattener().Flatten(tc.vals, mem, &id, b.Registry(), b.Sizes())
			assertFelts(t, got, tc.want)
		})
	}
}

func TestFlattenByteArray(t *testing.T) {
	b := sierra.NewBuilder()
	id := b.ByteArray()
	mem := vm.NewMemory()

	for _, text := range []string{"", "short", strings.Repeat("w", 31), "a longer text spanning more than one full word"} {
		ba, err := bytearray.FromString(text)
		if err != nil {
			t.Fatal(err)
		}
		got := NewFlattener().Flatten(byteArrayValues(t, mem, ba), mem, &id, b.Registry(), b.Sizes())

		back, n, err := bytearray.FromFelts(got)
		if err != nil {
			t.Fatalf("FromFelts(%q): %v", text, err)
		}
		if n != len(got) {
			t.Errorf("%q: consumed %d of %d felts", text, n, len(got))
		}
		if s, err := back.Text(); err != nil || s != text {
			t.Errorf("flattened %q reads back as %q, %v", text, s, err)
		}
	}
}

func TestFlattenNestedArrays(t *testing.T) {
	b := sierra.NewBuilder()
	u32 := b.Scalar(sierra.KindUint32)
	outer := b.Array(b.Array(u32))
	mem := vm.NewMemory()

	first := putSegment(t, mem, ints(1)...)
	second := putSegment(t, mem, ints(2, 3)...)
	vals := putSegment(t, mem, concat(first, second)...)

	got := NewFlattener().Flatten(vals, mem, &outer, b.Registry(), b.Sizes())
	assertFelts(t, got, felts(2, 1, 1, 2, 2, 3))
}

func TestFlattenUnsupported(t *testing.T) {
	b := sierra.NewBuilder()
	u8 := b.Scalar(sierra.KindUint8)
	mem := vm.NewMemory()
	cell := putSegment(t, mem, ints(1)...)

	tests := []struct {
		name string
		id   sierra.TypeID
		vals []vm.MaybeRelocatable
	}{
		{"box", b.Box(u8), cell[:1]},
		{"nullable", b.Nullable(u8), ints(0)},
		{"dict", b.Felt252Dict(u8), cell[1:]},
		{"padding", b.Enum("app::E", b.Struct("app::P", u8, u8), u8, b.Unit()), ints(2, 1, 1)},
		{"short stream", b.Struct("app::S", u8, u8), ints(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := tc.id
			mustDesync(t, func() {
				NewFlattener().Flatten(tc.vals, mem, &id, b.Registry(), b.Sizes())
			})
		})
	}
}
