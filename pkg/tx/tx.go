// Package tx wraps Bitcoin wire transactions for block assembly and
// inspection.
package tx

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ErrNotCoinbase is returned when coinbase-only data is requested from a
// regular transaction.
var ErrNotCoinbase = errors.New("not a coinbase transaction")

// Tx is a Bitcoin transaction. It carries the full witness serialization
// when one is present.
type Tx struct {
	msg *wire.MsgTx
}

// New returns an empty version-1 transaction.
func New() *Tx {
	return &Tx{msg: wire.NewMsgTx(wire.TxVersion)}
}

// FromMsg wraps an existing wire transaction without copying it.
func FromMsg(msg *wire.MsgTx) *Tx {
	return &Tx{msg: msg}
}

// Msg exposes the underlying wire transaction.
func (t *Tx) Msg() *wire.MsgTx {
	return t.msg
}

// Copy returns a deep copy.
func (t *Tx) Copy() *Tx {
	return &Tx{msg: t.msg.Copy()}
}

// Decode reads one transaction from r, witness format included.
func (t *Tx) Decode(r io.Reader) error {
	if t.msg == nil {
		t.msg = wire.NewMsgTx(wire.TxVersion)
	}
	if err := t.msg.Deserialize(r); err != nil {
		return fmt.Errorf("decode transaction: %w", err)
	}
	return nil
}

// Encode writes the transaction to w, witness format when present.
func (t *Tx) Encode(w io.Writer) error {
	if err := t.msg.Serialize(w); err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	return nil
}

// EncodeNoWitness writes the legacy serialization, witness data stripped.
func (t *Tx) EncodeNoWitness(w io.Writer) error {
	if err := t.msg.SerializeNoWitness(w); err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	return nil
}

// ParseTx decodes a transaction from data and rejects trailing bytes.
func ParseTx(data []byte) (*Tx, error) {
	t := New()
	r := bytes.NewReader(data)
	if err := t.Decode(r); err != nil {
		return nil, err
	}
	if n := r.Len(); n != 0 {
		return nil, fmt.Errorf("parse transaction: %d trailing bytes", n)
	}
	return t, nil
}

// Serialize returns the witness serialization as a fresh byte slice.
func (t *Tx) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(t.Size())
	if err := t.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TxID returns the transaction ID: the double SHA-256 of the
// serialization without witness data, in internal byte order.
func (t *Tx) TxID() chainhash.Hash {
	return t.msg.TxHash()
}

// WTxID returns the witness transaction ID. It equals TxID for
// transactions without witness data.
func (t *Tx) WTxID() chainhash.Hash {
	return t.msg.WitnessHash()
}

// Size returns the serialized length in bytes, witness included.
func (t *Tx) Size() int {
	return t.msg.SerializeSize()
}

// BaseSize returns the serialized length without witness data.
func (t *Tx) BaseSize() int {
	return t.msg.SerializeSizeStripped()
}

// Weight returns the BIP-141 weight: 3*base size + total size.
func (t *Tx) Weight() int64 {
	return blockchain.GetTransactionWeight(btcutil.NewTx(t.msg))
}

// VSize returns the virtual size: weight divided by 4, rounded up.
func (t *Tx) VSize() int64 {
	return (t.Weight() + 3) / 4
}

// HasWitness reports whether any input carries witness data.
func (t *Tx) HasWitness() bool {
	return t.msg.HasWitness()
}

// IsCoinbase reports whether the transaction spends the null outpoint as
// its single input.
func (t *Tx) IsCoinbase() bool {
	return blockchain.IsCoinBaseTx(t.msg)
}

// Validate runs the context-free sanity checks: input and output
// presence, value ranges, no duplicate inputs, coinbase script length.
func (t *Tx) Validate() error {
	return blockchain.CheckTransactionSanity(btcutil.NewTx(t.msg))
}

// CoinbaseScript returns the signature script of the coinbase input.
func (t *Tx) CoinbaseScript() ([]byte, error) {
	if !t.IsCoinbase() {
		return nil, ErrNotCoinbase
	}
	return t.msg.TxIn[0].SignatureScript, nil
}

// txJSON is the JSON shape: a summary plus the raw serialization. Only
// raw is read back on decode; the rest is derived.
type txJSON struct {
	TxID     string `json:"txid"`
	WTxID    string `json:"wtxid"`
	Version  int32  `json:"version"`
	Size     int    `json:"size"`
	VSize    int64  `json:"vsize"`
	Weight   int64  `json:"weight"`
	LockTime uint32 `json:"locktime"`
	Inputs   int    `json:"inputs"`
	Outputs  int    `json:"outputs"`
	Coinbase bool   `json:"coinbase"`
	Raw      string `json:"raw"`
}

// MarshalJSON encodes the transaction summary with the raw hex
// serialization.
func (t *Tx) MarshalJSON() ([]byte, error) {
	raw, err := t.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(txJSON{
		TxID:     t.TxID().String(),
		WTxID:    t.WTxID().String(),
		Version:  t.msg.Version,
		Size:     t.Size(),
		VSize:    t.VSize(),
		Weight:   t.Weight(),
		LockTime: t.msg.LockTime,
		Inputs:   len(t.msg.TxIn),
		Outputs:  len(t.msg.TxOut),
		Coinbase: t.IsCoinbase(),
		Raw:      hex.EncodeToString(raw),
	})
}

// UnmarshalJSON decodes the raw serialization and ignores the derived
// summary fields.
func (t *Tx) UnmarshalJSON(data []byte) error {
	var j txJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	raw, err := hex.DecodeString(j.Raw)
	if err != nil {
		return fmt.Errorf("decode raw transaction hex: %w", err)
	}
	parsed, err := ParseTx(raw)
	if err != nil {
		return err
	}
	t.msg = parsed.msg
	return nil
}
