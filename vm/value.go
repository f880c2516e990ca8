package vm

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/wippyai/cairo-io/felt"
)

// Relocatable is a pointer into a memory segment.
type Relocatable struct {
	Segment int
	Offset  int
}

func (r Relocatable) Add(n int) Relocatable {
	return Relocatable{Segment: r.Segment, Offset: r.Offset + n}
}

// Sub returns r - o. Both must point into the same segment and r must not precede o.
func (r Relocatable) Sub(o Relocatable) (int, error) {
	if r.Segment != o.Segment {
		return 0, fmt.Errorf("cannot subtract %s from %s: different segments", o, r)
	}
	if r.Offset < o.Offset {
		return 0, fmt.Errorf("cannot subtract %s from %s: negative distance", o, r)
	}
	return r.Offset - o.Offset, nil
}

func (r Relocatable) String() string {
	return strconv.Itoa(r.Segment) + ":" + strconv.Itoa(r.Offset)
}

// ParseRelocatable parses the "segment:offset" form.
func ParseRelocatable(s string) (Relocatable, error) {
	seg, off, ok := strings.Cut(s, ":")
	if !ok {
		return Relocatable{}, fmt.Errorf("relocatable %q: missing ':'", s)
	}
	si, err := strconv.Atoi(seg)
	if err != nil || si < 0 {
		return Relocatable{}, fmt.Errorf("relocatable %q: invalid segment", s)
	}
	oi, err := strconv.Atoi(off)
	if err != nil || oi < 0 {
		return Relocatable{}, fmt.Errorf("relocatable %q: invalid offset", s)
	}
	return Relocatable{Segment: si, Offset: oi}, nil
}

// MaybeRelocatable is a memory cell: either an integer felt or a pointer.
type MaybeRelocatable struct {
	val   felt.Felt
	rel   Relocatable
	isRel bool
}

func Int(f felt.Felt) MaybeRelocatable {
	return MaybeRelocatable{val: f}
}

func IntFromUint64(v uint64) MaybeRelocatable {
	return Int(felt.FromUint64(v))
}

func IntFromInt64(v int64) MaybeRelocatable {
	return Int(felt.FromInt64(v))
}

func Rel(segment, offset int) MaybeRelocatable {
	return MaybeRelocatable{rel: Relocatable{Segment: segment, Offset: offset}, isRel: true}
}

func FromRelocatable(r Relocatable) MaybeRelocatable {
	return MaybeRelocatable{rel: r, isRel: true}
}

func (m MaybeRelocatable) IsRelocatable() bool {
	return m.isRel
}

// Relocatable returns the pointer, or false for integer cells.
func (m MaybeRelocatable) Relocatable() (Relocatable, bool) {
	return m.rel, m.isRel
}

// Int returns the felt, or false for pointer cells.
func (m MaybeRelocatable) Int() (felt.Felt, bool) {
	return m.val, !m.isRel
}

// IsZeroInt reports whether m is the integer 0.
func (m MaybeRelocatable) IsZeroInt() bool {
	return !m.isRel && m.val.IsZero()
}

// String renders integers in decimal and pointers as "segment:offset".
func (m MaybeRelocatable) String() string {
	if m.isRel {
		return m.rel.String()
	}
	return m.val.String()
}

// ParseMaybeRelocatable accepts "segment:offset", decimal or "0x" hex.
func ParseMaybeRelocatable(s string) (MaybeRelocatable, error) {
	if strings.Contains(s, ":") {
		r, err := ParseRelocatable(s)
		if err != nil {
			return MaybeRelocatable{}, err
		}
		return FromRelocatable(r), nil
	}
	f, err := felt.Parse(s)
	if err != nil {
		return MaybeRelocatable{}, err
	}
	return Int(f), nil
}

// MarshalJSON writes pointers as "seg:off" and integers as hex strings.
func (m MaybeRelocatable) MarshalJSON() ([]byte, error) {
	if m.isRel {
		return json.Marshal(m.rel.String())
	}
	return json.Marshal(m.val.Hex())
}

// UnmarshalJSON accepts strings in any ParseMaybeRelocatable form and bare integer numbers.
func (m *MaybeRelocatable) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	v, err := ParseMaybeRelocatable(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
