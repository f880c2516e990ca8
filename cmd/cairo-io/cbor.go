package main

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/cairo-io/transcoder"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cairo-io: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// marshalCBOR encodes arguments as a CBOR array. Each felt is a 32-byte
// big-endian byte string; array arguments are nested arrays of those.
func marshalCBOR(args transcoder.FuncArgs) ([]byte, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		felts := arg.Felts()
		words := make([][]byte, len(felts))
		for j, f := range felts {
			b := f.Bytes()
			words[j] = b[:]
		}
		if arg.IsArray() {
			out[i] = words
		} else {
			out[i] = words[0]
		}
	}
	return cborEncMode.Marshal(out)
}
