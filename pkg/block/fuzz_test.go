package block

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
)

// FuzzParseHeader tests that arbitrary input does not panic the header
// codec and that anything it accepts re-serializes byte-identically.
func FuzzParseHeader(f *testing.F) {
	if seed, err := hex.DecodeString(genesisHeaderHex); err == nil {
		f.Add(seed)
	}
	f.Add([]byte{})
	f.Add(make([]byte, HeaderSize))
	f.Add(make([]byte, HeaderSize+1))

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := ParseHeader(data, false)
		if err != nil {
			return
		}

		// Derived values must not panic on anything the codec accepts.
		h.BlockHash()
		h.Target()
		h.Difficulty()
		h.Timestamp()
		h.Validate() // May fail but must not panic.

		raw, err := h.Serialize(false)
		if err != nil {
			t.Fatalf("Serialize() after successful parse: %v", err)
		}
		if !bytes.Equal(raw, data) {
			t.Errorf("re-serialization = %x, want %x", raw, data)
		}
	})
}

// FuzzParseBlock tests that arbitrary input does not panic the block
// codec and that anything it accepts re-serializes consistently.
func FuzzParseBlock(f *testing.F) {
	var genesis bytes.Buffer
	if err := chaincfg.MainNetParams.GenesisBlock.Serialize(&genesis); err == nil {
		f.Add(genesis.Bytes())
	}
	if header, err := hex.DecodeString(genesisHeaderHex); err == nil {
		f.Add(append(header, 0x00)) // Header with an empty tx list.
	}
	f.Add([]byte{})
	f.Add(make([]byte, HeaderSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		b, err := ParseBlock(data, false)
		if err != nil {
			return
		}

		b.BlockHash()
		b.Weight()
		b.VSize()
		b.HasWitness()
		b.Height()
		b.Validate() // May fail but must not panic.

		raw, err := b.Serialize(false)
		if err != nil {
			t.Fatalf("Serialize() after successful parse: %v", err)
		}
		if len(raw) != b.Size() {
			t.Errorf("len(Serialize()) = %d, want Size() = %d", len(raw), b.Size())
		}
		back, err := ParseBlock(raw, false)
		if err != nil {
			t.Fatalf("ParseBlock(reserialized) error: %v", err)
		}
		if back.BlockHash() != b.BlockHash() {
			t.Errorf("reserialized hash = %s, want %s", back.BlockHash(), b.BlockHash())
		}
	})
}
