package vm

import (
	"fmt"
)

type cell struct {
	val MaybeRelocatable
	set bool
}

// Memory is a write-once segmented memory. It mirrors the VM's memory model
// closely enough to replay recorded runs and to back tests.
type Memory struct {
	segments [][]cell
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryFromSegments creates one segment per slice, in order.
func NewMemoryFromSegments(segments [][]MaybeRelocatable) *Memory {
	m := NewMemory()
	for _, data := range segments {
		base := m.AddSegment()
		// Fresh segments cannot conflict.
		_, _ = m.Load(base, data)
	}
	return m
}

// AddSegment appends an empty segment and returns its base pointer.
func (m *Memory) AddSegment() Relocatable {
	m.segments = append(m.segments, nil)
	return Relocatable{Segment: len(m.segments) - 1}
}

func (m *Memory) NumSegments() int {
	return len(m.segments)
}

// Insert writes v at addr. Rewriting a cell with a different value is an error.
func (m *Memory) Insert(addr Relocatable, v MaybeRelocatable) error {
	if addr.Segment < 0 || addr.Segment >= len(m.segments) {
		return fmt.Errorf("memory: segment %d does not exist", addr.Segment)
	}
	if addr.Offset < 0 {
		return fmt.Errorf("memory: negative offset at %s", addr)
	}
	seg := m.segments[addr.Segment]
	if addr.Offset >= len(seg) {
		grown := make([]cell, addr.Offset+1)
		copy(grown, seg)
		seg = grown
		m.segments[addr.Segment] = seg
	}
	if c := seg[addr.Offset]; c.set && c.val != v {
		return fmt.Errorf("memory: inconsistent write at %s: %s != %s", addr, c.val, v)
	}
	seg[addr.Offset] = cell{val: v, set: true}
	return nil
}

// Load writes data contiguously from base and returns the address past the last cell.
func (m *Memory) Load(base Relocatable, data []MaybeRelocatable) (Relocatable, error) {
	for i, v := range data {
		if err := m.Insert(base.Add(i), v); err != nil {
			return Relocatable{}, err
		}
	}
	return base.Add(len(data)), nil
}

// Get returns the cell at addr, or false when it was never written.
func (m *Memory) Get(addr Relocatable) (MaybeRelocatable, bool) {
	if addr.Segment < 0 || addr.Segment >= len(m.segments) {
		return MaybeRelocatable{}, false
	}
	seg := m.segments[addr.Segment]
	if addr.Offset < 0 || addr.Offset >= len(seg) || !seg[addr.Offset].set {
		return MaybeRelocatable{}, false
	}
	return seg[addr.Offset].val, true
}

// GetContinuousRange copies size cells starting at addr. Every cell must be written.
func (m *Memory) GetContinuousRange(addr Relocatable, size int) ([]MaybeRelocatable, error) {
	if size < 0 {
		return nil, fmt.Errorf("memory: negative range size %d", size)
	}
	out := make([]MaybeRelocatable, 0, size)
	for i := 0; i < size; i++ {
		v, ok := m.Get(addr.Add(i))
		if !ok {
			return nil, fmt.Errorf("memory: unknown value at %s", addr.Add(i))
		}
		out = append(out, v)
	}
	return out, nil
}

// SegmentSize returns the number of cells up to the highest written offset.
func (m *Memory) SegmentSize(segment int) (int, bool) {
	if segment < 0 || segment >= len(m.segments) {
		return 0, false
	}
	return len(m.segments[segment]), true
}
