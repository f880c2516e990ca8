package bytearray

import (
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/cairo-io/felt"
)

func TestFromString(t *testing.T) {
	ba, err := FromString("ZK is a way of building trust in the world. The age of integrity is upon us.")
	if err != nil {
		t.Fatal(err)
	}

	want := []felt.Felt{
		felt.MustParse("0x2"),
		felt.MustParse("0x5a4b206973206120776179206f66206275696c64696e672074727573742069"),
		felt.MustParse("0x6e2074686520776f726c642e2054686520616765206f6620696e7465677269"),
		felt.MustParse("0x74792069732075706f6e2075732e"),
		felt.MustParse("0xe"),
	}
	got := ba.Felts()
	if len(got) != len(want) {
		t.Fatalf("got %d felts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("felt[%d] = %s, want %s", i, got[i].Hex(), want[i].Hex())
		}
	}
}

func TestExactMultipleOfWordSize(t *testing.T) {
	s := strings.Repeat("A", 2*WordSize)
	ba, err := FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(ba.Data) != 2 {
		t.Errorf("word count = %d, want 2", len(ba.Data))
	}
	if ba.PendingWordLen != 0 {
		t.Errorf("pending_word_len = %d, want 0", ba.PendingWordLen)
	}
	if !ba.PendingWord.IsZero() {
		t.Errorf("pending_word = %s, want 0", ba.PendingWord.Hex())
	}
}

func TestEmpty(t *testing.T) {
	ba := FromBytes(nil)
	fs := ba.Felts()
	if len(fs) != 3 || !fs[0].IsZero() || !fs[1].IsZero() || !fs[2].IsZero() {
		t.Errorf("empty byte array felts = %v", fs)
	}
	s, err := ba.Text()
	if err != nil || s != "" {
		t.Errorf("String() = %q, %v", s, err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", strings.Repeat("xyz", 40), "héllo wörld ✓"} {
		ba, err := FromString(s)
		if err != nil {
			t.Fatal(err)
		}
		back, n, err := FromFelts(ba.Felts())
		if err != nil {
			t.Fatalf("FromFelts(%q): %v", s, err)
		}
		if n != len(ba.Felts()) {
			t.Errorf("consumed %d, want %d", n, len(ba.Felts()))
		}
		got, err := back.Text()
		if err != nil {
			t.Fatalf("String(): %v", err)
		}
		if got != s {
			t.Errorf("round trip = %q, want %q", got, s)
		}
	}
}

func TestTextRejectsInvalid(t *testing.T) {
	t.Run("invalid utf8", func(t *testing.T) {
		ba := ByteArray{PendingWord: felt.FromUint64(0xfffe), PendingWordLen: 2}
		if _, err := ba.Text(); !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("err = %v, want ErrInvalidUTF8", err)
		}
	})

	t.Run("pending too wide", func(t *testing.T) {
		ba := ByteArray{PendingWord: felt.FromUint64(0x616263), PendingWordLen: 2}
		if _, err := ba.Text(); err == nil {
			t.Error("expected width error")
		}
	})

	t.Run("pending len out of range", func(t *testing.T) {
		ba := ByteArray{PendingWordLen: WordSize}
		if _, err := ba.Text(); err == nil {
			t.Error("expected range error")
		}
	})
}

func TestFromFeltsErrors(t *testing.T) {
	if _, _, err := FromFelts([]felt.Felt{felt.FromUint64(1)}); err == nil {
		t.Error("short input should fail")
	}
	if _, _, err := FromFelts([]felt.Felt{felt.FromUint64(5), felt.Zero(), felt.Zero()}); err == nil {
		t.Error("word count beyond input should fail")
	}
}

func TestShortString(t *testing.T) {
	f, err := ShortString("hi")
	if err != nil {
		t.Fatal(err)
	}
	if f != felt.MustParse("0x6869") {
		t.Errorf("ShortString(hi) = %s", f.Hex())
	}
	if _, err := ShortString(strings.Repeat("a", 32)); err == nil {
		t.Error("32-byte short string should fail")
	}
}
