package bytearray

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/wippyai/cairo-io/felt"
)

// WordSize is the number of bytes packed into one full word.
const WordSize = 31

// ByteArray is the chunked byte-string layout: full 31-byte words followed by
// a pending word holding the remaining 0-30 bytes.
type ByteArray struct {
	Data           []felt.Felt
	PendingWord    felt.Felt
	PendingWordLen int
}

// FromBytes chunks b into big-endian 31-byte words.
func FromBytes(b []byte) ByteArray {
	full := len(b) / WordSize
	ba := ByteArray{Data: make([]felt.Felt, 0, full)}
	for i := 0; i < full; i++ {
		ba.Data = append(ba.Data, felt.FromBytesBE(b[i*WordSize:(i+1)*WordSize]))
	}
	rest := b[full*WordSize:]
	ba.PendingWord = felt.FromBytesBE(rest)
	ba.PendingWordLen = len(rest)
	return ba
}

// FromString rejects strings that are not valid UTF-8.
func FromString(s string) (ByteArray, error) {
	if !utf8.ValidString(s) {
		return ByteArray{}, fmt.Errorf("bytearray: string is not valid UTF-8")
	}
	return FromBytes([]byte(s)), nil
}

// Felts returns [word_count, word_1..word_n, pending_word, pending_word_len].
func (ba ByteArray) Felts() []felt.Felt {
	out := make([]felt.Felt, 0, len(ba.Data)+3)
	out = append(out, felt.FromUint64(uint64(len(ba.Data))))
	out = append(out, ba.Data...)
	out = append(out, ba.PendingWord, felt.FromUint64(uint64(ba.PendingWordLen)))
	return out
}

// FromFelts reads the layout produced by Felts and reports how many felts it consumed.
func FromFelts(fs []felt.Felt) (ByteArray, int, error) {
	if len(fs) < 3 {
		return ByteArray{}, 0, fmt.Errorf("bytearray: need at least 3 felts, got %d", len(fs))
	}
	n, ok := fs[0].Uint64()
	if !ok || n > uint64(len(fs)-3) {
		return ByteArray{}, 0, fmt.Errorf("bytearray: invalid word count %s", fs[0])
	}
	words := int(n)
	pendingLen, ok := fs[words+2].Uint64()
	if !ok {
		return ByteArray{}, 0, fmt.Errorf("bytearray: invalid pending word length %s", fs[words+2])
	}
	ba := ByteArray{
		Data:           append([]felt.Felt(nil), fs[1:1+words]...),
		PendingWord:    fs[1+words],
		PendingWordLen: int(pendingLen),
	}
	return ba, words + 3, nil
}

// Bytes reassembles the byte string, validating every word against its declared width.
func (ba ByteArray) Bytes() ([]byte, error) {
	if ba.PendingWordLen < 0 || ba.PendingWordLen >= WordSize {
		return nil, fmt.Errorf("bytearray: pending word length %d out of range", ba.PendingWordLen)
	}
	out := make([]byte, 0, len(ba.Data)*WordSize+ba.PendingWordLen)
	for i, w := range ba.Data {
		b, err := wordBytes(w, WordSize)
		if err != nil {
			return nil, fmt.Errorf("bytearray: word %d: %w", i, err)
		}
		out = append(out, b...)
	}
	b, err := wordBytes(ba.PendingWord, ba.PendingWordLen)
	if err != nil {
		return nil, fmt.Errorf("bytearray: pending word: %w", err)
	}
	return append(out, b...), nil
}

// ErrInvalidUTF8 is returned by Text when the bytes are not UTF-8.
var ErrInvalidUTF8 = errors.New("bytearray: invalid UTF-8")

// Text decodes the reassembled bytes as UTF-8.
func (ba ByteArray) Text() (string, error) {
	b, err := ba.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

func wordBytes(w felt.Felt, size int) ([]byte, error) {
	v := w.BigInt()
	if v.BitLen() > size*8 {
		return nil, fmt.Errorf("value %s does not fit in %d bytes", w.Hex(), size)
	}
	out := make([]byte, size)
	if size > 0 {
		v.FillBytes(out)
	}
	return out, nil
}

// ShortString packs up to 31 bytes of s into a single felt.
func ShortString(s string) (felt.Felt, error) {
	if len(s) > WordSize {
		return felt.Felt{}, fmt.Errorf("bytearray: short string %q exceeds %d bytes", s, WordSize)
	}
	return felt.FromBigInt(new(big.Int).SetBytes([]byte(s))), nil
}
