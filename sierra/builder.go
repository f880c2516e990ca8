package sierra

// Well-known user type names the decoder recognizes.
const (
	NamePanicResult = "core::panics::PanicResult"
	NameBool        = "core::bool"
	NameSpan        = "core::array::Span"
	NameF64         = "orion_numbers::f64::F64"
	NameByteArray   = "core::byte_array::ByteArray"
)

// Builder assembles a registry and its size table the way the compiler lays
// types out. It backs fixtures and tests.
type Builder struct {
	types  Types
	sizes  TypeSizes
	next   TypeID
	scalar map[Kind]TypeID
}

func NewBuilder() *Builder {
	return &Builder{
		types:  make(Types),
		sizes:  make(TypeSizes),
		scalar: make(map[Kind]TypeID),
	}
}

func (b *Builder) Registry() Types { return b.types }

func (b *Builder) Sizes() TypeSizes { return b.sizes }

func (b *Builder) add(info *TypeInfo, size int) TypeID {
	info.ID = b.next
	b.next++
	b.types[info.ID] = info
	b.sizes[info.ID] = int16(size)
	return info.ID
}

func (b *Builder) size(id TypeID) int {
	return int(b.sizes[id])
}

// Scalar returns the id of a one-value kind, creating it on first use.
func (b *Builder) Scalar(kind Kind) TypeID {
	if id, ok := b.scalar[kind]; ok {
		return id
	}
	id := b.add(&TypeInfo{Kind: kind}, 1)
	b.scalar[kind] = id
	return id
}

func (b *Builder) Felt252() TypeID { return b.Scalar(KindFelt252) }

func (b *Builder) GasBuiltin() TypeID { return b.Scalar(KindGasBuiltin) }

// Array is a (start, end) pointer pair.
func (b *Builder) Array(elem TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindArray, Inner: elem}, 2)
}

func (b *Builder) Box(inner TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindBox, Inner: inner}, 1)
}

func (b *Builder) Nullable(inner TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindNullable, Inner: inner}, 1)
}

func (b *Builder) NonZero(inner TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindNonZero, Inner: inner}, b.size(inner))
}

func (b *Builder) Snapshot(inner TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindSnapshot, Inner: inner}, b.size(inner))
}

// Struct lays members out back to back.
func (b *Builder) Struct(name string, members ...TypeID) TypeID {
	size := 0
	for _, m := range members {
		size += b.size(m)
	}
	return b.add(&TypeInfo{
		Kind:        KindStruct,
		DebugName:   name,
		GenericArgs: []GenericArg{UserArg(name)},
		Members:     members,
	}, size)
}

// Enum reserves a tag plus the largest variant.
func (b *Builder) Enum(name string, variants ...TypeID) TypeID {
	maxSize := 0
	for _, v := range variants {
		maxSize = max(maxSize, b.size(v))
	}
	return b.add(&TypeInfo{
		Kind:        KindEnum,
		DebugName:   name,
		GenericArgs: []GenericArg{UserArg(name)},
		Variants:    variants,
	}, 1+maxSize)
}

// Unit is the empty struct.
func (b *Builder) Unit() TypeID {
	return b.Struct("Unit")
}

func (b *Builder) Bool() TypeID {
	unit := b.Unit()
	return b.Enum(NameBool, unit, unit)
}

// Span wraps an array of elem the way core::array::Span does.
func (b *Builder) Span(elem TypeID) TypeID {
	arr := b.Array(elem)
	name := NameSpan + "::<" + b.types[elem].String() + ">"
	return b.add(&TypeInfo{
		Kind:        KindStruct,
		DebugName:   name,
		GenericArgs: []GenericArg{UserArg(name), TypeArg(arr)},
		Members:     []TypeID{arr},
	}, 2)
}

func (b *Builder) F64() TypeID {
	return b.Struct(NameF64, b.Scalar(KindSint64))
}

func (b *Builder) ByteArray() TypeID {
	return b.Struct(NameByteArray,
		b.Array(b.Scalar(KindBytes31)),
		b.Felt252(),
		b.Scalar(KindUint32),
	)
}

// PanicResult wraps ok as the success variant of a panicking function's result.
func (b *Builder) PanicResult(ok TypeID) TypeID {
	panicData := b.Struct("core::panics::Panic")
	errVariant := b.Struct("Tuple<core::panics::Panic, Array<felt252>>", panicData, b.Array(b.Felt252()))
	return b.Enum(NamePanicResult+"::<("+b.types[ok].String()+",)>", ok, errVariant)
}

// Felt252Dict is a single pointer to the end of the entry segment.
func (b *Builder) Felt252Dict(value TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindFelt252Dict, Inner: value}, 1)
}

// SquashedFelt252Dict is a (start, end) pointer pair.
func (b *Builder) SquashedFelt252Dict(value TypeID) TypeID {
	return b.add(&TypeInfo{Kind: KindSquashedFelt252Dict, Inner: value}, 2)
}

// Raw registers an arbitrary entry with an explicit size.
func (b *Builder) Raw(info TypeInfo, size int) TypeID {
	return b.add(&info, size)
}
