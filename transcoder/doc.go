// Package transcoder converts between JSON documents and the felt values a
// Cairo program consumes and produces.
//
// # Encoding
//
// Encoder walks a JSON object against the schema's input record and appends
// felts in declaration order:
//
//	Schema type     Felts
//	──────────────────────────────────────────────
//	u8..u64         value
//	i8..i64         value mod p
//	F64             round(value * 2^32) mod p
//	felt252         decimal, 0x hex or short string
//	bool            0 or 1
//	ByteArray       n, word_1..word_n, pending, pending_len
//	Array/Span      len, items...
//	record          fields in declaration order
//
// The whole record becomes one array argument. An empty object produces no
// arguments at all.
//
// # Decoding
//
// Decoder consumes VM return values guided by the Sierra registry. Arrays and
// squashed dictionaries are (start, end) pointer pairs, boxes and nullables
// are single pointers, and enums are a tag followed by zero padding up to the
// largest variant. Generic structs take field names from the schema's output
// record; nested records switch the naming context only through Struct fields.
//
// Values that do not match the registry are fatal: Decode panics with an
// *errors.Error of kind desync. Callers that host the decoder recover it at
// their boundary.
//
// # Flattening
//
// Flattener re-serializes a return value into the flat Serde layout used by
// serialize_output, without a schema.
package transcoder
