package felt

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is an element of the Stark prime field, p = 2^251 + 17*2^192 + 1.
// The zero value is 0. Felts are comparable with ==.
type Felt struct {
	e fp.Element
}

var (
	modulus     = fp.Modulus()
	halfModulus = new(big.Int).Rsh(modulus, 1)
)

// Modulus returns a copy of the field prime.
func Modulus() *big.Int {
	return new(big.Int).Set(modulus)
}

func Zero() Felt { return Felt{} }

func One() Felt { return FromUint64(1) }

func FromUint64(v uint64) Felt {
	var f Felt
	f.e.SetUint64(v)
	return f
}

// FromInt64 maps negative values to p - |v|.
func FromInt64(v int64) Felt {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	return FromBigInt(big.NewInt(v))
}

// FromBigInt reduces v modulo p.
func FromBigInt(v *big.Int) Felt {
	r := v
	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		r = new(big.Int).Mod(v, modulus)
	}
	var f Felt
	f.e.SetBigInt(r)
	return f
}

// FromBytesBE interprets b as a big-endian integer, reduced modulo p.
func FromBytesBE(b []byte) Felt {
	return FromBigInt(new(big.Int).SetBytes(b))
}

// Parse accepts "0x"-prefixed hex or decimal with an optional leading '-'.
// Values outside [0, p) are reduced.
func Parse(s string) (Felt, error) {
	if s == "" {
		return Felt{}, fmt.Errorf("felt: empty string")
	}
	v := new(big.Int)
	if hex, ok := cutHexPrefix(s); ok {
		if hex == "" {
			return Felt{}, fmt.Errorf("felt: empty hex literal %q", s)
		}
		if _, ok := v.SetString(hex, 16); !ok {
			return Felt{}, fmt.Errorf("felt: invalid hex literal %q", s)
		}
		return FromBigInt(v), nil
	}
	if _, ok := v.SetString(s, 10); !ok {
		return Felt{}, fmt.Errorf("felt: invalid decimal literal %q", s)
	}
	return FromBigInt(v), nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Felt {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

func cutHexPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return "", false
}

// BigInt returns the canonical representative in [0, p).
func (f Felt) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// Signed returns the representative in (-p/2, p/2].
func (f Felt) Signed() *big.Int {
	v := f.BigInt()
	if v.Cmp(halfModulus) > 0 {
		v.Sub(v, modulus)
	}
	return v
}

func (f Felt) IsZero() bool {
	return f.e.IsZero()
}

// Uint64 reports false when the value does not fit in 64 bits.
func (f Felt) Uint64() (uint64, bool) {
	v := f.BigInt()
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// Bytes returns the 32-byte big-endian encoding.
func (f Felt) Bytes() [32]byte {
	var out [32]byte
	f.BigInt().FillBytes(out[:])
	return out
}

// Hex returns the minimal lowercase "0x" form ("0x0" for zero).
func (f Felt) Hex() string {
	return "0x" + f.BigInt().Text(16)
}

// String returns the decimal form.
func (f Felt) String() string {
	return f.BigInt().String()
}

func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.Hex()), nil
}

func (f *Felt) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
