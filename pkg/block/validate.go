package block

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Validation errors.
var (
	ErrNilHeader         = errors.New("block has nil header")
	ErrBadVersion        = errors.New("invalid header version")
	ErrTimeBeforeGenesis = errors.New("header time before genesis")
	ErrZeroNonce         = errors.New("header nonce is zero")
	ErrInsufficientWork  = errors.New("insufficient proof of work")
	ErrNoCoinbase        = errors.New("first transaction must be coinbase")
	ErrMultipleCoinbase  = errors.New("multiple coinbase transactions in block")
	ErrBadMerkleRoot     = errors.New("merkle root mismatch")
)

// genesisUnix is the mainnet genesis timestamp. No valid header can
// predate it.
const genesisUnix = 1231006505

// Validate checks header structure and proof of work.
func (h *Header) Validate() error {
	if h.Version <= 0 {
		return fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if h.Time < genesisUnix {
		return fmt.Errorf("%w: %d < %d", ErrTimeBeforeGenesis, h.Time, genesisUnix)
	}
	if h.Nonce == 0 {
		return ErrZeroNonce
	}
	return h.ValidatePoW()
}

// ValidatePoW checks that the header hash is below the target. Both
// sides are compared big-endian, so the internal-order hash is reversed
// into display order first.
func (h *Header) ValidatePoW() error {
	target, err := h.Target()
	if err != nil {
		return err
	}
	hash := h.BlockHash()
	var display [chainhash.HashSize]byte
	for i, b := range hash {
		display[chainhash.HashSize-1-i] = b
	}
	if bytes.Compare(display[:], target[:]) >= 0 {
		return fmt.Errorf("%w: hash %s, target %x", ErrInsufficientWork, hash, target)
	}
	return nil
}

// Validate checks block structure and internal consistency: exactly one
// coinbase leading the transaction list, sane transactions, a matching
// merkle commitment, and a valid header.
func (b *Block) Validate() error {
	if b.Header == nil {
		return ErrNilHeader
	}
	if len(b.Transactions) == 0 || !b.Transactions[0].IsCoinbase() {
		return ErrNoCoinbase
	}
	for i, t := range b.Transactions[1:] {
		if t.IsCoinbase() {
			return fmt.Errorf("tx %d: %w", i+1, ErrMultipleCoinbase)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tx %d: %w", i+1, err)
		}
	}
	root := ComputeMerkleRoot(b.TxIDs())
	if root != b.Header.MerkleRoot {
		return fmt.Errorf("%w: header %s, computed %s", ErrBadMerkleRoot, b.Header.MerkleRoot, root)
	}
	return b.Header.Validate()
}
