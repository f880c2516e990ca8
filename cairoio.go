package cairoio

import "github.com/wippyai/cairo-io/vm"

// Memory is read-only access to Cairo VM memory.
type Memory interface {
	GetContinuousRange(addr vm.Relocatable, size int) ([]vm.MaybeRelocatable, error)
	// SegmentSize reports the size of a segment, or false when it does not exist.
	SegmentSize(segment int) (int, bool)
}

var _ Memory = (*vm.Memory)(nil)
