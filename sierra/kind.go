package sierra

import "fmt"

// Kind is the concrete core type of a registry entry.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindArray
	KindBox
	KindNullable
	KindFelt252
	KindBoundedInt
	KindBytes31
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint128
	KindSint8
	KindSint16
	KindSint32
	KindSint64
	KindSint128
	KindNonZero
	KindSnapshot
	KindEnum
	KindStruct
	KindFelt252Dict
	KindSquashedFelt252Dict
	KindGasBuiltin
	KindConst
	KindRangeCheck
	KindSystem
	KindBitwise
	KindPedersen
	KindPoseidon
	KindSegmentArena
	KindUninitialized
	KindFelt252DictEntry
	KindEcPoint
	KindEcState
	KindBuiltinCosts
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindArray:               "Array",
	KindBox:                 "Box",
	KindNullable:            "Nullable",
	KindFelt252:             "Felt252",
	KindBoundedInt:          "BoundedInt",
	KindBytes31:             "Bytes31",
	KindUint8:               "Uint8",
	KindUint16:              "Uint16",
	KindUint32:              "Uint32",
	KindUint64:              "Uint64",
	KindUint128:             "Uint128",
	KindSint8:               "Sint8",
	KindSint16:              "Sint16",
	KindSint32:              "Sint32",
	KindSint64:              "Sint64",
	KindSint128:             "Sint128",
	KindNonZero:             "NonZero",
	KindSnapshot:            "Snapshot",
	KindEnum:                "Enum",
	KindStruct:              "Struct",
	KindFelt252Dict:         "Felt252Dict",
	KindSquashedFelt252Dict: "SquashedFelt252Dict",
	KindGasBuiltin:          "GasBuiltin",
	KindConst:               "Const",
	KindRangeCheck:          "RangeCheck",
	KindSystem:              "System",
	KindBitwise:             "Bitwise",
	KindPedersen:            "Pedersen",
	KindPoseidon:            "Poseidon",
	KindSegmentArena:        "SegmentArena",
	KindUninitialized:       "Uninitialized",
	KindFelt252DictEntry:    "Felt252DictEntry",
	KindEcPoint:             "EcPoint",
	KindEcState:             "EcState",
	KindBuiltinCosts:        "BuiltinCosts",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a core type name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if Kind(k) != KindUnknown && n == name {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown core type %q", name)
}

func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint128
}

func (k Kind) IsSigned() bool {
	return k >= KindSint8 && k <= KindSint128
}

// IsFeltLike reports kinds rendered as hex felts.
func (k Kind) IsFeltLike() bool {
	return k == KindFelt252 || k == KindBoundedInt || k == KindBytes31
}

// IsScalar reports kinds occupying exactly one integer value.
func (k Kind) IsScalar() bool {
	return k.IsFeltLike() || k.IsUnsigned() || k.IsSigned()
}

// HasInner reports kinds that wrap a single element type.
func (k Kind) HasInner() bool {
	switch k {
	case KindArray, KindBox, KindNullable, KindNonZero, KindSnapshot,
		KindFelt252Dict, KindSquashedFelt252Dict, KindFelt252DictEntry, KindUninitialized:
		return true
	default:
		return false
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == KindUnknown || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("cannot marshal kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
