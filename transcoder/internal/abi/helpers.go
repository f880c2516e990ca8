package abi

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// FixedPointShift is the number of fractional bits of the F64 encoding.
const FixedPointShift = 32

var fixedPointScale = math.Ldexp(1, FixedPointShift)

// TypeName returns a JSON-flavoured name for error messages.
func TypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, uint64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return reflect.TypeOf(value).String()
}

// IsValidNumber reports whether s is all decimal digits, with an optional
// leading '-'. The empty string qualifies.
func IsValidNumber(s string) bool {
	for i, c := range s {
		if c >= '0' && c <= '9' {
			continue
		}
		if i == 0 && c == '-' {
			continue
		}
		return false
	}
	return true
}

// HasHexPrefix reports a leading lowercase "0x". "0X..." is not a hex
// literal for felt252 arguments and packs as a short string instead.
func HasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x")
}

// ToFixedPoint returns round(r * 2^32). It fails when the product is not
// finite or does not fit the i64 backing an F64.
func ToFixedPoint(r float64) (*big.Int, bool) {
	scaled := math.Round(r * fixedPointScale)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return nil, false
	}
	// float64(MaxInt64) rounds up to 2^63, which is already out of range.
	if scaled < math.MinInt64 || scaled >= math.MaxInt64 {
		return nil, false
	}
	out, _ := new(big.Float).SetFloat64(scaled).Int(nil)
	return out, true
}

// FromFixedPoint returns v / 2^32.
func FromFixedPoint(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f / fixedPointScale
}
