// Package abi provides internal helpers shared by the encoder and decoder.
//
// # Contents
//
//   - coerce.go: JSON number coercion to Go integers and floats
//   - helpers.go: felt string classification, F64 fixed-point conversion,
//     type names for error messages
//
// This package is internal to the transcoder.
package abi
