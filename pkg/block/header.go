package block

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderSize is the serialized length of a block header in bytes.
const HeaderSize = 80

// Codec errors.
var (
	ErrTruncated      = errors.New("truncated input")
	ErrTrailingData   = errors.New("trailing data")
	ErrTargetOverflow = errors.New("target wider than 256 bits")
)

// Header contains block metadata. Hashes are kept in internal (wire)
// byte order; chainhash.Hash.String renders the reversed display form.
type Header struct {
	Version    int32          `json:"version"`
	PrevBlock  chainhash.Hash `json:"prev_block"`
	MerkleRoot chainhash.Hash `json:"merkle_root"`
	Time       uint32         `json:"time"`
	Bits       uint32         `json:"bits"`
	Nonce      uint32         `json:"nonce"`
}

// appendTo appends the 80-byte wire serialization: all integers
// little-endian, hashes in internal byte order.
func (h *Header) appendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Time)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	buf = binary.LittleEndian.AppendUint32(buf, h.Nonce)
	return buf
}

// Encode writes the 80-byte serialization to w.
func (h *Header) Encode(w io.Writer) error {
	_, err := w.Write(h.appendTo(make([]byte, 0, HeaderSize)))
	return err
}

// Decode reads the 80-byte serialization from r.
func (h *Header) Decode(r io.Reader) error {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return fmt.Errorf("%w: header: got %d bytes, want %d", ErrTruncated, n, HeaderSize)
	}
	h.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	h.Time = binary.LittleEndian.Uint32(buf[68:72])
	h.Bits = binary.LittleEndian.Uint32(buf[72:76])
	h.Nonce = binary.LittleEndian.Uint32(buf[76:80])
	return nil
}

// Serialize returns the 80-byte serialization, running Validate first
// when validate is set.
func (h *Header) Serialize(validate bool) ([]byte, error) {
	if validate {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}
	return h.appendTo(make([]byte, 0, HeaderSize)), nil
}

// ParseHeader decodes a header from exactly HeaderSize bytes, running
// Validate when validate is set.
func ParseHeader(data []byte, validate bool) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header: got %d bytes, want %d", ErrTruncated, len(data), HeaderSize)
	}
	if len(data) > HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes after header", ErrTrailingData, len(data)-HeaderSize)
	}
	h := new(Header)
	if err := h.Decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if validate {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// BlockHash returns the double SHA-256 of the serialized header, in
// internal byte order.
func (h *Header) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.appendTo(make([]byte, 0, HeaderSize)))
}

// Target expands the compact bits encoding into the full 256-bit
// threshold, rendered big-endian. The low 24 bits of Bits are the
// significand and the high byte is a base-256 exponent; exponents of
// three or less shift the significand right instead.
func (h *Header) Target() ([32]byte, error) {
	var target [32]byte
	exponent := uint(h.Bits >> 24)
	t := big.NewInt(int64(h.Bits & 0x00ffffff))
	if exponent <= 3 {
		t.Rsh(t, 8*(3-exponent))
	} else {
		t.Lsh(t, 8*(exponent-3))
	}
	if t.BitLen() > 8*len(target) {
		return target, fmt.Errorf("%w: bits 0x%08x expands to %d bits", ErrTargetOverflow, h.Bits, t.BitLen())
	}
	t.FillBytes(target[:])
	return target, nil
}

// Difficulty returns the ratio of the maximum target to this header's
// target as the conventional two-factor float: significand ratio times
// a power of 256. A zero significand yields +Inf.
func (h *Header) Difficulty() float64 {
	significand := h.Bits & 0x00ffffff
	exponent := h.Bits >> 24
	return 0xffff / float64(significand) * math.Pow(256, float64(0x1d)-float64(exponent))
}

// Timestamp returns the header time as a UTC time.Time.
func (h *Header) Timestamp() time.Time {
	return time.Unix(int64(h.Time), 0).UTC()
}

// headerJSON is the JSON representation: hashes in display hex, time in
// RFC3339, bits as the 8-digit hex display string. Hash, target and
// difficulty are derived on encode and ignored on decode.
type headerJSON struct {
	Version    int32   `json:"version"`
	PrevBlock  string  `json:"prev_block"`
	MerkleRoot string  `json:"merkle_root"`
	Time       string  `json:"time"`
	Bits       string  `json:"bits"`
	Nonce      uint32  `json:"nonce"`
	Hash       string  `json:"hash"`
	Target     string  `json:"target"`
	Difficulty float64 `json:"difficulty"`
}

// MarshalJSON encodes the header with its derived hash, target and
// difficulty.
func (h *Header) MarshalJSON() ([]byte, error) {
	target, err := h.Target()
	if err != nil {
		return nil, err
	}
	return json.Marshal(headerJSON{
		Version:    h.Version,
		PrevBlock:  h.PrevBlock.String(),
		MerkleRoot: h.MerkleRoot.String(),
		Time:       h.Timestamp().Format(time.RFC3339),
		Bits:       fmt.Sprintf("%08x", h.Bits),
		Nonce:      h.Nonce,
		Hash:       h.BlockHash().String(),
		Target:     hex.EncodeToString(target[:]),
		Difficulty: h.Difficulty(),
	})
}

// UnmarshalJSON decodes the header fields and ignores the derived ones.
func (h *Header) UnmarshalJSON(data []byte) error {
	var j headerJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	prev, err := chainhash.NewHashFromStr(j.PrevBlock)
	if err != nil {
		return fmt.Errorf("decode prev_block: %w", err)
	}
	root, err := chainhash.NewHashFromStr(j.MerkleRoot)
	if err != nil {
		return fmt.Errorf("decode merkle_root: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, j.Time)
	if err != nil {
		return fmt.Errorf("decode time: %w", err)
	}
	bits, err := strconv.ParseUint(j.Bits, 16, 32)
	if err != nil {
		return fmt.Errorf("decode bits: %w", err)
	}
	h.Version = j.Version
	h.PrevBlock = *prev
	h.MerkleRoot = *root
	h.Time = uint32(ts.Unix())
	h.Bits = uint32(bits)
	h.Nonce = j.Nonce
	return nil
}
