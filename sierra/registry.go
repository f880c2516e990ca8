package sierra

import (
	"sort"
	"strings"
)

// TypeID identifies a concrete type in a program registry.
type TypeID uint64

// GenericArg is one generic argument of a concrete type's long id.
// Exactly one of UserType or Type is set.
type GenericArg struct {
	Type     *TypeID `json:"type,omitempty"`
	UserType string  `json:"user_type,omitempty"`
}

func UserArg(name string) GenericArg {
	return GenericArg{UserType: name}
}

func TypeArg(id TypeID) GenericArg {
	return GenericArg{Type: &id}
}

func (g GenericArg) IsUserType() bool {
	return g.Type == nil && g.UserType != ""
}

// TypeInfo describes one concrete type.
type TypeInfo struct {
	DebugName   string       `json:"debug_name,omitempty"`
	GenericArgs []GenericArg `json:"generic_args,omitempty"`
	// Members of a struct, in declaration order.
	Members []TypeID `json:"members,omitempty"`
	// Variants of an enum, in declaration order.
	Variants []TypeID `json:"variants,omitempty"`
	ID       TypeID   `json:"id"`
	// Inner is the wrapped type of Array, Box, Nullable, NonZero, Snapshot and the dict kinds.
	Inner TypeID `json:"inner,omitempty"`
	Kind  Kind   `json:"kind"`
}

// UserTypeName returns the debug name of the first generic argument when it is a user type.
func (t *TypeInfo) UserTypeName() (string, bool) {
	if len(t.GenericArgs) == 0 || !t.GenericArgs[0].IsUserType() {
		return "", false
	}
	return t.GenericArgs[0].UserType, true
}

// TypeArg returns the i-th generic argument when it is a type reference.
func (t *TypeInfo) TypeArg(i int) (TypeID, bool) {
	if i < 0 || i >= len(t.GenericArgs) || t.GenericArgs[i].Type == nil {
		return 0, false
	}
	return *t.GenericArgs[i].Type, true
}

func (t *TypeInfo) String() string {
	if t.DebugName != "" {
		return t.DebugName
	}
	var b strings.Builder
	b.WriteString(t.Kind.String())
	if name, ok := t.UserTypeName(); ok {
		b.WriteString("<")
		b.WriteString(name)
		b.WriteString(">")
	}
	return b.String()
}

// Registry resolves concrete type ids.
type Registry interface {
	Type(id TypeID) (*TypeInfo, bool)
}

// TypeSizes maps a concrete type to its flat footprint in values.
type TypeSizes map[TypeID]int16

// Size returns the footprint of id, or false when it is not recorded.
func (s TypeSizes) Size(id TypeID) (int, bool) {
	v, ok := s[id]
	return int(v), ok
}

// Types is an in-memory Registry.
type Types map[TypeID]*TypeInfo

func NewTypes(infos ...*TypeInfo) Types {
	t := make(Types, len(infos))
	for _, info := range infos {
		t[info.ID] = info
	}
	return t
}

func (t Types) Type(id TypeID) (*TypeInfo, bool) {
	info, ok := t[id]
	return info, ok
}

// IDs returns the registered ids in ascending order.
func (t Types) IDs() []TypeID {
	ids := make([]TypeID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
