// Package schema defines the record model that names program inputs and
// outputs, and loads it from YAML.
//
// A Schema is a set of named records, each an ordered list of typed fields.
// Field types are a primitive by name, an Array or Span of another type, or a
// reference to another record by name. Field order is load-bearing: it is the
// order in which values are laid out for the VM.
//
// The encoder walks the input root record; the decoder uses the output root
// to recover field names for generic structs.
package schema
