// Package layout provides enum layout calculations for the flat VM value stream.
//
// # Layout Rules
//
// The compiler reserves room for the largest variant of an enum:
//   - Tag: one value, followed by the payload area
//   - Payload: the selected variant's values, right-aligned
//   - Padding: max variant size minus selected variant size zeros, before the payload
//
// Enums with more than two variants store the tag as 2*(n-1-index); two-variant
// enums (bool, Option, PanicResult) store the index itself.
//
// # Usage
//
//	c := layout.NewCalculator(sizes)
//	info, err := c.Enum(enumType)
//	idx, ok := layout.VariantIndex(tag, len(enumType.Variants))
//	pad := info.Padding(idx)
//
// This package is internal to the transcoder.
package layout
