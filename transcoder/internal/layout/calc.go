package layout

import (
	"fmt"

	"github.com/wippyai/cairo-io/sierra"
)

// Info describes how an enum occupies the flat value stream.
type Info struct {
	VariantSizes []int
	MaxVariant   int
}

// Padding returns the zero values that precede variant idx's payload.
func (i Info) Padding(idx int) int {
	return i.MaxVariant - i.VariantSizes[idx]
}

type Calculator struct {
	sizes sierra.TypeSizes
	cache map[sierra.TypeID]Info
}

func NewCalculator(sizes sierra.TypeSizes) *Calculator {
	return &Calculator{
		sizes: sizes,
		cache: make(map[sierra.TypeID]Info),
	}
}

// Size returns the recorded footprint of id.
func (c *Calculator) Size(id sierra.TypeID) (int, error) {
	size, ok := c.sizes.Size(id)
	if !ok {
		return 0, fmt.Errorf("no size recorded for type %d", id)
	}
	return size, nil
}

// Enum computes variant sizes of an enum type.
func (c *Calculator) Enum(t *sierra.TypeInfo) (Info, error) {
	if cached, ok := c.cache[t.ID]; ok {
		return cached, nil
	}

	info := Info{VariantSizes: make([]int, len(t.Variants))}
	for i, v := range t.Variants {
		size, err := c.Size(v)
		if err != nil {
			return Info{}, fmt.Errorf("variant %d: %w", i, err)
		}
		info.VariantSizes[i] = size
		info.MaxVariant = max(info.MaxVariant, size)
	}

	c.cache[t.ID] = info
	return info, nil
}

// VariantIndex converts a CASM enum tag to the declared variant index.
// Enums with more than two variants encode index i as 2*(n-1-i); smaller
// enums store the index directly.
func VariantIndex(tag uint64, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	if n > 2 {
		half := tag >> 1
		if half > uint64(n-1) {
			return 0, false
		}
		return n - 1 - int(half), true
	}
	if tag >= uint64(n) {
		return 0, false
	}
	return int(tag), true
}

// Tag is the inverse of VariantIndex.
func Tag(idx, n int) uint64 {
	if n > 2 {
		return uint64(n-1-idx) << 1
	}
	return uint64(idx)
}
