package transcoder

import (
	cairoio "github.com/wippyai/cairo-io"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/vm"
)

// Flattener re-serializes VM return values into the flat felt layout of
// Cairo's Serde: arrays as length then elements, enums as variant index then
// payload, structs as their members in order.
type Flattener struct{}

func NewFlattener() *Flattener {
	return &Flattener{}
}

// Flatten walks the return value like Decoder.Decode but emits felts. Only
// arrays, scalars, enums and structs are supported; any other type panics
// with a desync error, as does a value stream that does not match the registry.
func (f *Flattener) Flatten(
	returnValues []vm.MaybeRelocatable,
	mem cairoio.Memory,
	returnType *sierra.TypeID,
	reg sierra.Registry,
	sizes sierra.TypeSizes,
) []felt.Felt {
	out := []felt.Felt{}
	if returnType == nil {
		return out
	}
	w := newWalker(errors.PhaseFlatten, mem, reg, sizes)
	w.flattenValue(newStream(returnValues), *returnType, &out, nil)
	return out
}

func (w *walker) flattenValue(in *valueStream, id sierra.TypeID, out *[]felt.Felt, path []string) {
	info := w.typeInfo(id, path)

	switch {
	case info.Kind == sierra.KindArray:
		data := newStream(w.arrayRange(in, path))
		var elems []felt.Felt
		n := 0
		for ; data.more(); n++ {
			w.flattenValue(data, info.Inner, &elems, indexPath(path, n))
		}
		*out = append(*out, felt.FromUint64(uint64(n)))
		*out = append(*out, elems...)

	case info.Kind.IsScalar():
		*out = append(*out, w.nextInt(in, path, info.Kind.String()))

	case info.Kind == sierra.KindEnum:
		if classify(info) == userTypePanicResult {
			if len(info.Variants) == 0 {
				w.fatal(path, "panic result %s has no variants", info)
			}
			w.flattenValue(in, info.Variants[0], out, path)
			return
		}
		idx := w.variant(in, info, path)
		*out = append(*out, felt.FromUint64(uint64(idx)))
		w.flattenValue(in, info.Variants[idx], out, path)

	case info.Kind == sierra.KindStruct:
		for i, m := range info.Members {
			w.flattenValue(in, m, out, indexPath(path, i))
		}

	default:
		w.fatal(path, "unexpected type %s", info)
	}
}
