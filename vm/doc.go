// Package vm provides the value types of Cairo VM memory and a small
// in-memory segment store.
//
// A memory cell holds either an integer felt or a Relocatable pointer
// (segment index + offset). Returned arrays, boxes and dictionaries live in
// memory and are reached through such pointers.
//
// Memory is not the VM: it implements the read-only access the decoder needs
// (cairoio.Memory) so recorded runs can be replayed and decoded offline.
//
// # Text form
//
//	"1:4"      pointer to segment 1, offset 4
//	"42"       integer 42
//	"0x2a"     integer 42
//
// Memory is NOT safe for concurrent use.
package vm
