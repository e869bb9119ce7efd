// Package blockstore persists block headers and raw blocks keyed by hash.
package blockstore

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/rs/zerolog"

	"github.com/stonebridge-tech/bedrock/internal/log"
	"github.com/stonebridge-tech/bedrock/internal/storage"
	"github.com/stonebridge-tech/bedrock/pkg/block"
)

// Key prefixes for the block store.
var (
	prefixHeader = []byte("h/") // h/<hash(32)> -> header (80 bytes)
	prefixBlock  = []byte("b/") // b/<hash(32)> -> raw block
)

// ErrNotFound is returned when a requested block or header is not stored.
var ErrNotFound = errors.New("not found")

// Store persists blocks and their headers to a storage.DB. Hash keys use
// internal byte order; display strings reverse them.
type Store struct {
	db     storage.DB
	logger zerolog.Logger
}

// NewStore creates a block store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db, logger: log.Store}
}

// PutBlock stores a block and its header under the block hash. When
// validate is true the block must pass full validation first. Both
// records are written in one batch when the database supports it.
func (s *Store) PutBlock(blk *block.Block, validate bool) (chainhash.Hash, error) {
	if validate {
		if err := blk.Validate(); err != nil {
			return chainhash.Hash{}, err
		}
	}

	raw, err := blk.Serialize(false)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("block serialize: %w", err)
	}
	hdr, err := blk.Header.Serialize(false)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("header serialize: %w", err)
	}

	hash := blk.BlockHash()
	if err := s.putPair(headerKey(hash), hdr, blockKey(hash), raw); err != nil {
		return chainhash.Hash{}, err
	}

	s.logger.Debug().
		Str("hash", hash.String()).
		Int("txs", len(blk.Transactions)).
		Int("size", len(raw)).
		Msg("Block stored")
	return hash, nil
}

// putPair writes both records atomically when the DB supports batching.
func (s *Store) putPair(hdrKey, hdr, blkKey, raw []byte) error {
	if batcher, ok := s.db.(storage.Batcher); ok {
		batch := batcher.NewBatch()
		if err := batch.Put(hdrKey, hdr); err != nil {
			return fmt.Errorf("header put: %w", err)
		}
		if err := batch.Put(blkKey, raw); err != nil {
			return fmt.Errorf("block put: %w", err)
		}
		return batch.Commit()
	}
	if err := s.db.Put(hdrKey, hdr); err != nil {
		return fmt.Errorf("header put: %w", err)
	}
	if err := s.db.Put(blkKey, raw); err != nil {
		return fmt.Errorf("block put: %w", err)
	}
	return nil
}

// Block retrieves a block by its hash. The stored bytes are decoded
// without re-validation.
func (s *Store) Block(hash chainhash.Hash) (*block.Block, error) {
	data, err := s.db.Get(blockKey(hash))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: block %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("block get: %w", err)
	}
	blk, err := block.ParseBlock(data, false)
	if err != nil {
		return nil, fmt.Errorf("stored block %s: %w", hash, err)
	}
	return blk, nil
}

// Header retrieves a block header by its block hash.
func (s *Store) Header(hash chainhash.Hash) (*block.Header, error) {
	data, err := s.db.Get(headerKey(hash))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: header %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("header get: %w", err)
	}
	hdr, err := block.ParseHeader(data, false)
	if err != nil {
		return nil, fmt.Errorf("stored header %s: %w", hash, err)
	}
	return hdr, nil
}

// Has checks if a block exists by hash.
func (s *Store) Has(hash chainhash.Hash) (bool, error) {
	return s.db.Has(blockKey(hash))
}

// Delete removes a block and its header.
func (s *Store) Delete(hash chainhash.Hash) error {
	if batcher, ok := s.db.(storage.Batcher); ok {
		batch := batcher.NewBatch()
		if err := batch.Delete(headerKey(hash)); err != nil {
			return fmt.Errorf("header delete: %w", err)
		}
		if err := batch.Delete(blockKey(hash)); err != nil {
			return fmt.Errorf("block delete: %w", err)
		}
		if err := batch.Commit(); err != nil {
			return err
		}
	} else {
		if err := s.db.Delete(headerKey(hash)); err != nil {
			return fmt.Errorf("header delete: %w", err)
		}
		if err := s.db.Delete(blockKey(hash)); err != nil {
			return fmt.Errorf("block delete: %w", err)
		}
	}

	s.logger.Debug().Str("hash", hash.String()).Msg("Block deleted")
	return nil
}

// ForEachHeader iterates over all stored headers.
// Return a non-nil error from fn to stop iteration early.
func (s *Store) ForEachHeader(fn func(hash chainhash.Hash, hdr *block.Header) error) error {
	return s.db.ForEach(prefixHeader, func(key, value []byte) error {
		// Key layout: "h/" + hash(32).
		if len(key) != len(prefixHeader)+chainhash.HashSize {
			return nil // Malformed key, skip.
		}
		var hash chainhash.Hash
		copy(hash[:], key[len(prefixHeader):])

		hdr, err := block.ParseHeader(value, false)
		if err != nil {
			s.logger.Warn().Err(err).Str("hash", hash.String()).Msg("Skipping corrupt header entry")
			return nil
		}
		return fn(hash, hdr)
	})
}

// Count returns the number of stored blocks.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.ForEach(prefixBlock, func(key, value []byte) error {
		n++
		return nil
	})
	return n, err
}

func headerKey(hash chainhash.Hash) []byte {
	key := make([]byte, len(prefixHeader)+chainhash.HashSize)
	copy(key, prefixHeader)
	copy(key[len(prefixHeader):], hash[:])
	return key
}

func blockKey(hash chainhash.Hash) []byte {
	key := make([]byte, len(prefixBlock)+chainhash.HashSize)
	copy(key, prefixBlock)
	copy(key[len(prefixBlock):], hash[:])
	return key
}
