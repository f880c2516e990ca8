package transcoder

import (
	"strconv"

	cairoio "github.com/wippyai/cairo-io"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/transcoder/internal/layout"
	"github.com/wippyai/cairo-io/vm"
)

// valueStream is a cursor over flat VM values.
type valueStream struct {
	vals []vm.MaybeRelocatable
	pos  int
}

func newStream(vals []vm.MaybeRelocatable) *valueStream {
	return &valueStream{vals: vals}
}

func (s *valueStream) more() bool {
	return s.pos < len(s.vals)
}

func (s *valueStream) next() (vm.MaybeRelocatable, bool) {
	if s.pos >= len(s.vals) {
		return vm.MaybeRelocatable{}, false
	}
	v := s.vals[s.pos]
	s.pos++
	return v, true
}

// walker holds the read-only inputs of one decode or flatten call. Every
// method that finds the stream out of step with the type panics with a desync error.
type walker struct {
	mem    cairoio.Memory
	reg    sierra.Registry
	layout *layout.Calculator
	phase  errors.Phase
}

func newWalker(phase errors.Phase, mem cairoio.Memory, reg sierra.Registry, sizes sierra.TypeSizes) *walker {
	return &walker{
		mem:    mem,
		reg:    reg,
		layout: layout.NewCalculator(sizes),
		phase:  phase,
	}
}

func (w *walker) fatal(path []string, detail string, args ...any) {
	panic(errors.Desync(w.phase, path, detail, args...))
}

func (w *walker) typeInfo(id sierra.TypeID, path []string) *sierra.TypeInfo {
	info, ok := w.reg.Type(id)
	if !ok {
		w.fatal(path, "type %d not in registry", id)
	}
	return info
}

func (w *walker) size(id sierra.TypeID, path []string) int {
	size, err := w.layout.Size(id)
	if err != nil {
		w.fatal(path, "%v", err)
	}
	return size
}

func (w *walker) next(in *valueStream, path []string) vm.MaybeRelocatable {
	v, ok := in.next()
	if !ok {
		w.fatal(path, "missing return value")
	}
	return v
}

func (w *walker) nextInt(in *valueStream, path []string, what string) felt.Felt {
	v := w.next(in, path)
	f, ok := v.Int()
	if !ok {
		w.fatal(path, "%s is not an integer: %s", what, v)
	}
	return f
}

func (w *walker) nextRel(in *valueStream, path []string, what string) vm.Relocatable {
	v := w.next(in, path)
	r, ok := v.Relocatable()
	if !ok {
		w.fatal(path, "%s is not relocatable: %s", what, v)
	}
	return r
}

// readRange fetches size values at addr.
func (w *walker) readRange(addr vm.Relocatable, size int, path []string) []vm.MaybeRelocatable {
	data, err := w.mem.GetContinuousRange(addr, size)
	if err != nil {
		w.fatal(path, "read %d values at %s: %v", size, addr, err)
	}
	return data
}

// arrayRange reads a (start, end) pointer pair and fetches the values between them.
func (w *walker) arrayRange(in *valueStream, path []string) []vm.MaybeRelocatable {
	start := w.nextRel(in, path, "array start")
	end := w.nextRel(in, path, "array end")
	n, err := end.Sub(start)
	if err != nil {
		w.fatal(path, "array bounds: %v", err)
	}
	return w.readRange(start, n, path)
}

// deref reads a pointer and fetches the pointee's values.
func (w *walker) deref(ptr vm.Relocatable, inner sierra.TypeID, path []string) *valueStream {
	return newStream(w.readRange(ptr, w.size(inner, path), path))
}

// variant reads an enum tag, checks the padding and returns the selected index.
func (w *walker) variant(in *valueStream, info *sierra.TypeInfo, path []string) int {
	idx := w.tag(in, info, path)
	enum, err := w.layout.Enum(info)
	if err != nil {
		w.fatal(path, "enum %s: %v", info, err)
	}
	for i := 0; i < enum.Padding(idx); i++ {
		if v := w.next(in, path); !v.IsZeroInt() {
			w.fatal(path, "malformed enum %s: non-zero padding %s", info, v)
		}
	}
	return idx
}

func (w *walker) tag(in *valueStream, info *sierra.TypeInfo, path []string) int {
	tag, ok := w.nextInt(in, path, "enum tag").Uint64()
	if !ok {
		w.fatal(path, "invalid enum tag for %s", info)
	}
	idx, ok := layout.VariantIndex(tag, len(info.Variants))
	if !ok {
		w.fatal(path, "enum tag %d out of range for %s with %d variants", tag, info, len(info.Variants))
	}
	return idx
}

func childPath(path []string, elem string) []string {
	return append(append([]string{}, path...), elem)
}

func indexPath(path []string, i int) []string {
	return childPath(path, "["+strconv.Itoa(i)+"]")
}
