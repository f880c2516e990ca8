package transcoder

import (
	"github.com/goccy/go-json"

	"github.com/wippyai/cairo-io/felt"
)

// FuncArg is one argument slot of a Cairo entry point: either a single felt or
// a contiguous block the VM receives as an array.
type FuncArg struct {
	values []felt.Felt
	array  bool
}

func Single(f felt.Felt) FuncArg {
	return FuncArg{values: []felt.Felt{f}}
}

func ArrayArg(fs []felt.Felt) FuncArg {
	return FuncArg{values: fs, array: true}
}

func (a FuncArg) IsArray() bool {
	return a.array
}

// Felts returns the argument's values; a single argument has exactly one.
func (a FuncArg) Felts() []felt.Felt {
	return a.values
}

// MarshalJSON writes a single argument as a hex string and an array as a list of them.
func (a FuncArg) MarshalJSON() ([]byte, error) {
	if !a.array {
		return json.Marshal(a.values[0].Hex())
	}
	out := make([]string, len(a.values))
	for i, f := range a.values {
		out[i] = f.Hex()
	}
	return json.Marshal(out)
}

// FuncArgs is the ordered argument list of one call.
type FuncArgs []FuncArg

// Flatten concatenates every argument's values.
func (args FuncArgs) Flatten() []felt.Felt {
	var out []felt.Felt
	for _, a := range args {
		out = append(out, a.values...)
	}
	return out
}
