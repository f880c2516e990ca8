// Package bytearray implements the chunked byte-string convention used for
// text payloads: every full 31-byte chunk becomes one big-endian word, and the
// trailing 0-30 bytes travel in a pending word together with their length.
//
//	"ZK is ... upon us." (76 bytes)
//	→ [2, word(0..31), word(31..62), pending(62..76), 14]
//
// The package also provides ShortString, the single-felt packing used for
// felt252 values given as text.
package bytearray
