// Package cairoio translates between JSON and the Cairo VM calling convention.
//
// Program inputs and outputs are described by a schema of named records.
// Arguments are encoded from JSON into flat field elements (felts) before a
// run; return values are decoded back into JSON afterwards, guided by the
// compiler's Sierra type registry.
//
// # Architecture Overview
//
//	cairoio/            Root package with the VM Memory interface
//	├── felt/           Stark field elements
//	├── bytearray/      31-byte word chunking for ByteArray
//	├── schema/         Schema model and YAML loader
//	├── sierra/         Concrete type registry and size table
//	├── vm/             Relocatable values and in-memory segments
//	├── transcoder/     JSON to felts, VM values to JSON or flat felts
//	├── agent/          Run orchestration and pre/post-process hooks
//	├── config/         Scarb.toml [tool.agent] settings
//	├── errors/         Structured error types
//	└── cmd/cairo-io/   Command line tool
//
// # Quick Start
//
// Encode arguments:
//
//	s, err := schema.Load("cairo_schema.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	args, err := transcoder.NewEncoder().EncodeJSON([]byte(`{"n": 3}`), s)
//
// Decode a return value:
//
//	out, err := transcoder.NewDecoder().DecodeToString(
//	    returnValues, mem, &returnType, registry, sizes, s, false)
//
// # Error Model
//
// Encoding problems are ordinary errors. A decoder that finds the VM value
// stream out of step with the declared type panics with an *errors.Error of
// kind "desync": the stream can no longer be interpreted.
//
// # Thread Safety
//
// Schema, registries and size tables are read-only after loading and may be
// shared. vm.Memory is NOT thread-safe.
package cairoio
