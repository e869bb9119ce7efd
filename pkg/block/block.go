// Package block implements the Bitcoin block and header binary codec
// with structural and proof-of-work validation.
package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/stonebridge-tech/bedrock/pkg/tx"
)

// ErrBadCoinbaseHeight rejects a coinbase script whose height
// commitment cannot be read.
var ErrBadCoinbaseHeight = errors.New("invalid coinbase height push")

// Block is a full block: header plus transaction list.
type Block struct {
	Header       *Header  `json:"header"`
	Transactions []*tx.Tx `json:"transactions"`
}

// NewBlock creates a block with the given header and transactions.
func NewBlock(header *Header, txs []*tx.Tx) *Block {
	return &Block{
		Header:       header,
		Transactions: txs,
	}
}

// Decode reads one block from r: header, varint transaction count,
// transactions.
func (b *Block) Decode(r io.Reader) error {
	h := new(Header)
	if err := h.Decode(r); err != nil {
		return err
	}
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return fmt.Errorf("read transaction count: %w", err)
	}
	var txs []*tx.Tx
	for i := uint64(0); i < count; i++ {
		t := tx.New()
		if err := t.Decode(r); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
		txs = append(txs, t)
	}
	b.Header = h
	b.Transactions = txs
	return nil
}

// Encode writes the block serialization to w.
func (b *Block) Encode(w io.Writer) error {
	if b.Header == nil {
		return ErrNilHeader
	}
	if err := b.Header.Encode(w); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(b.Transactions))); err != nil {
		return fmt.Errorf("write transaction count: %w", err)
	}
	for i, t := range b.Transactions {
		if err := t.Encode(w); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
	}
	return nil
}

// Serialize returns the block serialization, running Validate first
// when validate is set.
func (b *Block) Serialize(validate bool) ([]byte, error) {
	if validate {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	buf.Grow(b.Size())
	if err := b.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBlock decodes a block from data, rejecting trailing bytes, and
// runs Validate when validate is set.
func ParseBlock(data []byte, validate bool) (*Block, error) {
	b := new(Block)
	r := bytes.NewReader(data)
	if err := b.Decode(r); err != nil {
		return nil, err
	}
	if n := r.Len(); n != 0 {
		return nil, fmt.Errorf("%w: %d bytes after block", ErrTrailingData, n)
	}
	if validate {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// BlockHash returns the header hash.
func (b *Block) BlockHash() chainhash.Hash {
	if b.Header == nil {
		return chainhash.Hash{}
	}
	return b.Header.BlockHash()
}

// TxIDs returns the transaction IDs in block order.
func (b *Block) TxIDs() []chainhash.Hash {
	ids := make([]chainhash.Hash, len(b.Transactions))
	for i, t := range b.Transactions {
		ids[i] = t.TxID()
	}
	return ids
}

// Size returns the serialized length in bytes.
func (b *Block) Size() int {
	n := HeaderSize + wire.VarIntSerializeSize(uint64(len(b.Transactions)))
	for _, t := range b.Transactions {
		n += t.Size()
	}
	return n
}

// Weight returns the sum of the transaction weights. The header and
// transaction count carry no weight.
func (b *Block) Weight() int64 {
	var weight int64
	for _, t := range b.Transactions {
		weight += t.Weight()
	}
	return weight
}

// VSize returns the virtual size: weight divided by 4, rounded up.
func (b *Block) VSize() int64 {
	return (b.Weight() + 3) / 4
}

// HasWitness reports whether any transaction carries witness data.
func (b *Block) HasWitness() bool {
	for _, t := range b.Transactions {
		if t.HasWitness() {
			return true
		}
	}
	return false
}

// Height returns the BIP-34 height committed in the coinbase script.
// Version 1 blocks commit no height; the bool is false for those.
func (b *Block) Height() (int64, bool, error) {
	if b.Header == nil {
		return 0, false, ErrNilHeader
	}
	if len(b.Transactions) == 0 || !b.Transactions[0].IsCoinbase() {
		return 0, false, ErrNoCoinbase
	}
	if b.Header.Version == 1 {
		return 0, false, nil
	}
	script, err := b.Transactions[0].CoinbaseScript()
	if err != nil {
		return 0, false, err
	}
	height, err := parseCoinbaseHeight(script)
	if err != nil {
		return 0, false, err
	}
	return height, true, nil
}

// parseCoinbaseHeight reads the first push of the coinbase script as a
// length-prefixed little-endian signed integer.
func parseCoinbaseHeight(script []byte) (int64, error) {
	if len(script) == 0 {
		return 0, fmt.Errorf("%w: empty coinbase script", ErrBadCoinbaseHeight)
	}
	n := int(script[0])
	if n > 8 {
		return 0, fmt.Errorf("%w: %d-byte push", ErrBadCoinbaseHeight, n)
	}
	if len(script) < 1+n {
		return 0, fmt.Errorf("%w: script too short for %d-byte push", ErrBadCoinbaseHeight, n)
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(script[1+i]) << (8 * i)
	}
	// Sign-extend from the top bit of the push.
	if n > 0 && n < 8 && script[n]&0x80 != 0 {
		v |= ^uint64(0) << (8 * n)
	}
	return int64(v), nil
}

// blockJSON is the JSON representation. Size, weight, vsize and height
// are derived on encode and ignored on decode; height is null when the
// block commits none.
type blockJSON struct {
	Hash         string   `json:"hash"`
	Header       *Header  `json:"header"`
	Transactions []*tx.Tx `json:"transactions"`
	Size         int      `json:"size"`
	Weight       int64    `json:"weight"`
	VSize        int64    `json:"vsize"`
	Height       *int64   `json:"height"`
}

// MarshalJSON encodes the block with its derived size, weight, vsize
// and height.
func (b *Block) MarshalJSON() ([]byte, error) {
	j := blockJSON{
		Hash:         b.BlockHash().String(),
		Header:       b.Header,
		Transactions: b.Transactions,
		Size:         b.Size(),
		Weight:       b.Weight(),
		VSize:        b.VSize(),
	}
	if height, ok, err := b.Height(); err == nil && ok {
		j.Height = &height
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes the header and transactions and ignores the
// derived fields.
func (b *Block) UnmarshalJSON(data []byte) error {
	var j blockJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	b.Header = j.Header
	b.Transactions = j.Transactions
	return nil
}
