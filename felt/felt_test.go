package felt

import (
	"math/big"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"0x2a", "42"},
		{"0X2A", "42"},
		{"0", "0"},
		{"-1", new(big.Int).Sub(Modulus(), big.NewInt(1)).String()},
		{"0x68656c6c6f", "448378203247"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			f, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.in, err)
			}
			if got := f.String(); got != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "-", "0x", "0xzz", "12a", "1.5"} {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q) should fail", in)
			}
		})
	}
}

func TestParseReducesModulus(t *testing.T) {
	p := Modulus()
	f, err := Parse("0x" + new(big.Int).Add(p, big.NewInt(5)).Text(16))
	if err != nil {
		t.Fatal(err)
	}
	if f != FromUint64(5) {
		t.Errorf("p+5 should reduce to 5, got %s", f)
	}
}

func TestFromInt64Signed(t *testing.T) {
	for _, v := range []int64{0, 1, -1, -42, 1 << 40, -(1 << 62)} {
		f := FromInt64(v)
		if got := f.Signed().Int64(); got != v {
			t.Errorf("FromInt64(%d).Signed() = %d", v, got)
		}
	}
}

func TestSignedBoundary(t *testing.T) {
	half := new(big.Int).Rsh(Modulus(), 1)
	f := FromBigInt(half)
	if f.Signed().Cmp(half) != 0 {
		t.Error("p/2 should stay positive")
	}
	g := FromBigInt(new(big.Int).Add(half, big.NewInt(1)))
	if g.Signed().Sign() >= 0 {
		t.Error("p/2+1 should be negative")
	}
}

func TestHex(t *testing.T) {
	if got := Zero().Hex(); got != "0x0" {
		t.Errorf("Zero().Hex() = %s", got)
	}
	if got := FromUint64(0x80000000).Hex(); got != "0x80000000" {
		t.Errorf("Hex() = %s", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	f := MustParse("0x5a4b206973206120776179206f66206275696c64696e672074727573742069")
	b := f.Bytes()
	if got := FromBytesBE(b[:]); got != f {
		t.Errorf("round trip mismatch: %s vs %s", got.Hex(), f.Hex())
	}
	if b[0] != 0 {
		t.Errorf("31-byte value should have a zero leading byte, got %x", b[0])
	}
}

func TestUint64(t *testing.T) {
	v, ok := FromUint64(7).Uint64()
	if !ok || v != 7 {
		t.Errorf("Uint64() = %d, %v", v, ok)
	}
	if _, ok := FromInt64(-1).Uint64(); ok {
		t.Error("p-1 should not fit in uint64")
	}
}

func TestTextMarshal(t *testing.T) {
	var f Felt
	if err := f.UnmarshalText([]byte("0x1234")); err != nil {
		t.Fatal(err)
	}
	out, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "0x1234" {
		t.Errorf("MarshalText() = %s", out)
	}
}
