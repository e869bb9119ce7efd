// Package bip39 implements BIP-39 entropy, mnemonic and seed handling.
package bip39

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Entropy errors.
var (
	ErrEntropyLength = errors.New("invalid entropy length")
	ErrEntropyFormat = errors.New("malformed entropy")
)

// Valid entropy sizes in bits.
var entropyLengths = [...]int{128, 160, 192, 224, 256}

func validEntropyLen(n int) bool {
	for _, l := range entropyLengths {
		if n == l {
			return true
		}
	}
	return false
}

// nextEntropyLen returns the smallest valid entropy length >= n.
func nextEntropyLen(n int) int {
	for _, l := range entropyLengths {
		if n <= l {
			return l
		}
	}
	return entropyLengths[len(entropyLengths)-1]
}

// Bits is a fixed-length sequence of bits, packed big-endian.
// Leading zeros are significant: a 128-bit value of 1 is 127 zero bits
// followed by a one. Unused bits in the final byte are always zero, so
// equality is plain byte equality.
type Bits struct {
	b []byte
	n int
}

// Len returns the number of bits.
func (x Bits) Len() int {
	return x.n
}

// String renders the bits as a '0'/'1' string.
func (x Bits) String() string {
	var sb strings.Builder
	sb.Grow(x.n)
	for i := 0; i < x.n; i++ {
		sb.WriteByte('0' + x.bit(i))
	}
	return sb.String()
}

// Bytes returns a copy of the packed bytes. When the bit length is not
// a multiple of eight, the final byte is zero-padded on the right.
func (x Bits) Bytes() []byte {
	out := make([]byte, len(x.b))
	copy(out, x.b)
	return out
}

// Equal reports whether two bit sequences have the same length and content.
func (x Bits) Equal(y Bits) bool {
	return x.n == y.n && bytes.Equal(x.b, y.b)
}

func (x Bits) bit(i int) byte {
	return (x.b[i/8] >> (7 - uint(i)%8)) & 1
}

// slice returns the bits in [from, to).
func (x Bits) slice(from, to int) Bits {
	out := Bits{b: make([]byte, (to-from+7)/8), n: to - from}
	for i := from; i < to; i++ {
		if x.bit(i) == 1 {
			j := i - from
			out.b[j/8] |= 1 << (7 - uint(j)%8)
		}
	}
	return out
}

// append returns x followed by y.
func (x Bits) append(y Bits) Bits {
	out := Bits{b: make([]byte, (x.n+y.n+7)/8), n: x.n + y.n}
	copy(out.b, x.b)
	for i := 0; i < y.n; i++ {
		if y.bit(i) == 1 {
			j := x.n + i
			out.b[j/8] |= 1 << (7 - uint(j)%8)
		}
	}
	return out
}

// uint reads width bits starting at off as a big-endian unsigned value.
func (x Bits) uint(off, width int) uint32 {
	var v uint32
	for i := 0; i < width; i++ {
		v = v<<1 | uint32(x.bit(off+i))
	}
	return v
}

// appendUint returns x followed by the low width bits of v, big-endian.
func (x Bits) appendUint(v uint32, width int) Bits {
	out := Bits{b: make([]byte, (x.n+width+7)/8), n: x.n + width}
	copy(out.b, x.b)
	for i := 0; i < width; i++ {
		if v>>(uint(width)-1-uint(i))&1 == 1 {
			j := x.n + i
			out.b[j/8] |= 1 << (7 - uint(j)%8)
		}
	}
	return out
}

func bitsFromBytes(b []byte, n int) Bits {
	out := Bits{b: make([]byte, (n+7)/8), n: n}
	copy(out.b, b)
	// Zero any pad bits in the final byte.
	if rem := n % 8; rem != 0 {
		out.b[len(out.b)-1] &= 0xFF << (8 - uint(rem))
	}
	return out
}

// EntropyFromBinary parses a '0'/'1' string of valid entropy length.
// Leading zeros are significant and required to reach a valid length.
func EntropyFromBinary(s string) (Bits, error) {
	if !validEntropyLen(len(s)) {
		return Bits{}, fmt.Errorf("%w: %d bits", ErrEntropyLength, len(s))
	}
	out := Bits{b: make([]byte, len(s)/8), n: len(s)}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			out.b[i/8] |= 1 << (7 - uint(i)%8)
		case '0':
		default:
			return Bits{}, fmt.Errorf("%w: bit %d is %q, want '0' or '1'", ErrEntropyFormat, i, s[i])
		}
	}
	return out, nil
}

// EntropyFromBytes interprets b as big-endian entropy of 8*len(b) bits.
func EntropyFromBytes(b []byte) (Bits, error) {
	if !validEntropyLen(8 * len(b)) {
		return Bits{}, fmt.Errorf("%w: %d bits", ErrEntropyLength, 8*len(b))
	}
	return bitsFromBytes(b, 8*len(b)), nil
}

// EntropyFromInt converts a non-negative integer to entropy. Values wider
// than 256 bits keep their leftmost 256 bits; anything narrower is
// left-padded with zeros up to the next valid entropy length.
func EntropyFromInt(v *big.Int) (Bits, error) {
	if v.Sign() < 0 {
		return Bits{}, fmt.Errorf("%w: negative integer", ErrEntropyFormat)
	}
	bl := v.BitLen()
	if bl == 0 {
		bl = 1
	}
	if bl > 256 {
		v = new(big.Int).Rsh(v, uint(bl-256))
		bl = 256
	}
	n := nextEntropyLen(bl)
	buf := make([]byte, n/8)
	v.FillBytes(buf)
	return Bits{b: buf, n: n}, nil
}

// GenerateEntropy returns fresh random entropy of the given bit size.
func GenerateEntropy(bits int) (Bits, error) {
	if !validEntropyLen(bits) {
		return Bits{}, fmt.Errorf("%w: %d bits", ErrEntropyLength, bits)
	}
	buf := make([]byte, bits/8)
	if _, err := rand.Read(buf); err != nil {
		return Bits{}, fmt.Errorf("read entropy: %w", err)
	}
	return Bits{b: buf, n: bits}, nil
}

// Checksum returns the BIP-39 checksum of the entropy: the leftmost
// len/32 bits of the SHA-256 digest of the entropy bytes. The digest is
// handled as a bit sequence, so checksums that begin with zero bits keep
// those bits.
func Checksum(entropy Bits) (Bits, error) {
	if !validEntropyLen(entropy.n) {
		return Bits{}, fmt.Errorf("%w: %d bits", ErrEntropyLength, entropy.n)
	}
	digest := sha256.Sum256(entropy.b)
	return bitsFromBytes(digest[:], 256).slice(0, entropy.n/32), nil
}
