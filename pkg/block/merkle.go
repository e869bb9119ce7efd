package block

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// ComputeMerkleRoot calculates the merkle root of transaction IDs.
//
// Algorithm:
//   - 0 hashes: returns zero hash
//   - 1 hash: returns that hash
//   - Otherwise: pairwise double SHA-256, duplicating the last element
//     if odd count, then repeat on the resulting level until one hash
//     remains.
func ComputeMerkleRoot(txids []chainhash.Hash) chainhash.Hash {
	if len(txids) == 0 {
		return chainhash.Hash{}
	}
	if len(txids) == 1 {
		return txids[0]
	}

	// Work on a copy so we don't mutate the caller's slice.
	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)

	for len(level) > 1 {
		// If odd, duplicate the last element.
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]chainhash.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		level = next
	}

	return level[0]
}

// hashPair combines two nodes: double SHA-256 over their concatenation.
func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [2 * chainhash.HashSize]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}
