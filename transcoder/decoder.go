package transcoder

import (
	stderrors "errors"
	"math/big"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	cairoio "github.com/wippyai/cairo-io"
	"github.com/wippyai/cairo-io/bytearray"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/transcoder/internal/abi"
	"github.com/wippyai/cairo-io/vm"
)

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Decoder turns VM return values into JSON values.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

type decodeState struct {
	*walker
	schema *schema.Schema
}

// Decode reconstructs the return value of type returnType from the flat
// returnValues, dereferencing pointers through mem. Generic structs take their
// field names from the schema's output record.
//
// The result is built from nil, bool, json.Number, float64, string, []any and
// *Object. A nil returnType yields nil.
//
// A missing schema record is returned as an error. A value stream that does
// not match the registry panics with an *errors.Error of kind desync.
func (d *Decoder) Decode(
	returnValues []vm.MaybeRelocatable,
	mem cairoio.Memory,
	returnType *sierra.TypeID,
	reg sierra.Registry,
	sizes sierra.TypeSizes,
	s *schema.Schema,
) (any, error) {
	if returnType == nil {
		return nil, nil
	}
	st := &decodeState{
		walker: newWalker(errors.PhaseDecode, mem, reg, sizes),
		schema: s,
	}
	root := ""
	if s != nil {
		root = s.Output
	}
	in := newStream(returnValues)
	out, err := st.decodeValue(in, *returnType, root, nil)
	if err != nil {
		return nil, err
	}
	Logger().Debug("decoded return value",
		zap.Int("values", len(returnValues)),
		zap.Int("unread", len(returnValues)-in.pos))
	return out, nil
}

// DecodeToString is Decode rendered as JSON text. A nil returnType yields "null".
func (d *Decoder) DecodeToString(
	returnValues []vm.MaybeRelocatable,
	mem cairoio.Memory,
	returnType *sierra.TypeID,
	reg sierra.Registry,
	sizes sierra.TypeSizes,
	s *schema.Schema,
	pretty bool,
) (string, error) {
	v, err := d.Decode(returnValues, mem, returnType, reg, sizes, s)
	if err != nil {
		return "", err
	}
	out, err := marshalValue(v, pretty)
	if err != nil {
		return "", errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "render JSON")
	}
	return out, nil
}

// decodeValue consumes the values of one id from in. ctx names the schema
// record that supplies field names for generic structs.
func (st *decodeState) decodeValue(in *valueStream, id sierra.TypeID, ctx string, path []string) (any, error) {
	info := st.typeInfo(id, path)

	switch info.Kind {
	case sierra.KindArray:
		return st.decodeArray(newStream(st.arrayRange(in, path)), info.Inner, ctx, path)

	case sierra.KindBox:
		ptr := st.nextRel(in, path, "box pointer")
		return st.decodeValue(st.deref(ptr, info.Inner, path), info.Inner, ctx, path)

	case sierra.KindNullable:
		v := st.next(in, path)
		if ptr, ok := v.Relocatable(); ok {
			return st.decodeValue(st.deref(ptr, info.Inner, path), info.Inner, ctx, path)
		}
		if v.IsZeroInt() {
			return nil, nil
		}
		st.fatal(path, "invalid nullable: %s", v)

	case sierra.KindFelt252, sierra.KindBoundedInt, sierra.KindBytes31:
		return st.nextInt(in, path, info.Kind.String()).Hex(), nil

	case sierra.KindUint8, sierra.KindUint16, sierra.KindUint32, sierra.KindUint64, sierra.KindUint128:
		v := st.nextInt(in, path, info.Kind.String()).BigInt()
		if v.Cmp(maxU128) > 0 {
			st.fatal(path, "%s value %s exceeds 128 bits", info.Kind, v)
		}
		return json.Number(v.String()), nil

	case sierra.KindSint8, sierra.KindSint16, sierra.KindSint32, sierra.KindSint64, sierra.KindSint128:
		v := st.nextInt(in, path, info.Kind.String()).Signed()
		if v.Cmp(maxI128) > 0 || v.Cmp(minI128) < 0 {
			st.fatal(path, "%s value %s exceeds 128 bits", info.Kind, v)
		}
		return json.Number(v.String()), nil

	case sierra.KindNonZero, sierra.KindSnapshot:
		return st.decodeValue(in, info.Inner, ctx, path)

	case sierra.KindEnum:
		return st.decodeEnum(in, info, ctx, path)

	case sierra.KindStruct:
		return st.decodeStruct(in, info, ctx, path)

	case sierra.KindFelt252Dict, sierra.KindSquashedFelt252Dict:
		return st.decodeDict(in, info, ctx, path)

	case sierra.KindGasBuiltin:
		in.next()
		return nil, nil

	default:
		st.fatal(path, "unexpected type %s", info)
	}
	return nil, nil
}

func (st *decodeState) decodeArray(data *valueStream, elem sierra.TypeID, ctx string, path []string) ([]any, error) {
	out := make([]any, 0, len(data.vals))
	for i := 0; data.more(); i++ {
		v, err := st.decodeValue(data, elem, ctx, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (st *decodeState) decodeEnum(in *valueStream, info *sierra.TypeInfo, ctx string, path []string) (any, error) {
	switch classify(info) {
	case userTypePanicResult:
		// Panics are reported before decoding; only the Ok payload reaches here.
		if len(info.Variants) == 0 {
			st.fatal(path, "panic result %s has no variants", info)
		}
		return st.decodeValue(in, info.Variants[0], ctx, path)

	case userTypeBool:
		idx := st.tag(in, info, path)
		if len(info.Variants) != 2 || st.size(info.Variants[0], path) != 0 || st.size(info.Variants[1], path) != 0 {
			st.fatal(path, "malformed bool enum %s", info)
		}
		return idx != 0, nil
	}

	idx := st.variant(in, info, path)
	return st.decodeValue(in, info.Variants[idx], ctx, path)
}

func (st *decodeState) decodeStruct(in *valueStream, info *sierra.TypeInfo, ctx string, path []string) (any, error) {
	switch classify(info) {
	case userTypeSpan:
		if arr, ok := info.TypeArg(1); ok {
			return st.decodeValue(in, arr, ctx, path)
		}
	case userTypeF64:
		return st.decodeF64(in, info, ctx, path)
	case userTypeByteArray:
		return st.decodeByteArray(in, info, ctx, path)
	}

	if st.schema == nil {
		return nil, errors.SchemaNotFound(errors.PhaseDecode, path, ctx)
	}
	rec, err := st.schema.Record(ctx)
	if err != nil {
		return nil, errors.SchemaNotFound(errors.PhaseDecode, path, ctx)
	}

	obj := NewObject()
	for i, member := range info.Members {
		field, ok := rec.Field(i)
		if !ok {
			// Members the schema does not name still occupy values.
			if _, err := st.decodeValue(in, member, ctx, indexPath(path, i)); err != nil {
				return nil, err
			}
			continue
		}
		next := ctx
		if field.Type.Kind == schema.KindStruct {
			next = field.Type.Name
		}
		v, err := st.decodeValue(in, member, next, childPath(path, field.Name))
		if err != nil {
			return nil, err
		}
		obj.Set(field.Name, v)
	}
	return obj, nil
}

func (st *decodeState) decodeF64(in *valueStream, info *sierra.TypeInfo, ctx string, path []string) (any, error) {
	if len(info.Members) == 0 {
		st.fatal(path, "fixed-point struct %s has no members", info)
	}
	v, err := st.decodeValue(in, info.Members[0], ctx, path)
	if err != nil {
		return nil, err
	}
	n, ok := v.(json.Number)
	if !ok {
		st.fatal(path, "fixed-point member is %s, not a number", abi.TypeName(v))
	}
	scaled, ok := new(big.Int).SetString(string(n), 10)
	if !ok {
		st.fatal(path, "fixed-point member %s is not an integer", n)
	}
	return abi.FromFixedPoint(scaled), nil
}

// decodeByteArray rebuilds the string from (data, pending_word, pending_word_len).
// Anything that does not form valid UTF-8 text decodes to null.
func (st *decodeState) decodeByteArray(in *valueStream, info *sierra.TypeInfo, ctx string, path []string) (any, error) {
	if len(info.Members) != 3 {
		st.fatal(path, "byte array %s has %d members", info, len(info.Members))
	}
	parts := make([]any, 3)
	for i, m := range info.Members {
		v, err := st.decodeValue(in, m, ctx, path)
		if err != nil {
			return nil, err
		}
		parts[i] = v
	}

	s, err := rebuildByteArray(parts[0], parts[1], parts[2], path)
	if err != nil {
		Logger().Debug("byte array decoded to null", zap.Strings("path", path), zap.Error(err))
		return nil, nil
	}
	return s, nil
}

func rebuildByteArray(data, pending, pendingLen any, path []string) (string, error) {
	words, ok := data.([]any)
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseDecode, nil, abi.TypeName(data), "array of words")
	}
	var ba bytearray.ByteArray
	for _, w := range words {
		f, err := feltFromHex(w)
		if err != nil {
			return "", err
		}
		ba.Data = append(ba.Data, f)
	}
	f, err := feltFromHex(pending)
	if err != nil {
		return "", err
	}
	ba.PendingWord = f

	n, ok := abi.CoerceToUint64(pendingLen)
	if !ok || n >= bytearray.WordSize {
		return "", errors.InvalidData(errors.PhaseDecode, nil, "invalid pending word length")
	}
	ba.PendingWordLen = int(n)
	text, err := ba.Text()
	if stderrors.Is(err, bytearray.ErrInvalidUTF8) {
		b, _ := ba.Bytes()
		return "", errors.InvalidUTF8(errors.PhaseDecode, path, b)
	}
	return text, err
}

func feltFromHex(v any) (felt.Felt, error) {
	s, ok := v.(string)
	if !ok {
		return felt.Felt{}, errors.TypeMismatch(errors.PhaseDecode, nil, abi.TypeName(v), "hex felt")
	}
	return felt.Parse(s)
}

// decodeDict decodes the (key, previous, value) triplets of a dictionary segment.
func (st *decodeState) decodeDict(in *valueStream, info *sierra.TypeInfo, ctx string, path []string) (any, error) {
	var (
		start vm.Relocatable
		size  int
	)
	if info.Kind == sierra.KindFelt252Dict {
		ptr := st.nextRel(in, path, "dict pointer")
		segSize, _ := st.mem.SegmentSize(ptr.Segment)
		if ptr.Offset != segSize || ptr.Offset%3 != 0 {
			st.fatal(path, "return value is not a valid Felt252Dict")
		}
		start = vm.Relocatable{Segment: ptr.Segment}
		size = ptr.Offset
	} else {
		from := st.nextRel(in, path, "squashed dict start")
		to := st.nextRel(in, path, "squashed dict end")
		n, err := to.Sub(from)
		if err != nil {
			st.fatal(path, "squashed dict bounds: %v", err)
		}
		if n%3 != 0 {
			st.fatal(path, "return value is not a valid SquashedFelt252Dict")
		}
		start, size = from, n
	}

	entries := st.readRange(start, size, path)
	obj := NewObject()
	for i := 0; i+2 < len(entries); i += 3 {
		key := entries[i].String()
		v, err := st.decodeValue(newStream(entries[i+2:i+3]), info.Inner, ctx, childPath(path, key))
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}
