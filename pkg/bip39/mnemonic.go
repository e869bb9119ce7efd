package bip39

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stonebridge-tech/bedrock/pkg/wordlist"
)

// Mnemonic errors.
var (
	ErrWordCount = errors.New("invalid mnemonic word count")
	ErrChecksum  = errors.New("mnemonic checksum mismatch")
)

// wordBits is the number of entropy+checksum bits encoded by one word.
const wordBits = 11

// Valid sentence lengths: one word per 11 bits of entropy+checksum.
var wordCounts = [...]int{12, 15, 18, 21, 24}

func validWordCount(n int) bool {
	for _, c := range wordCounts {
		if n == c {
			return true
		}
	}
	return false
}

// FromEntropy converts entropy to a checksummed mnemonic sentence.
// The checksum is appended to the entropy and the combined bit sequence
// is split into 11-bit groups, each indexing a word in the list. Words
// are joined with single spaces.
func FromEntropy(entropy Bits, list *wordlist.List) (string, error) {
	checksum, err := Checksum(entropy)
	if err != nil {
		return "", err
	}
	full := entropy.append(checksum)

	words := make([]string, 0, full.Len()/wordBits)
	for off := 0; off < full.Len(); off += wordBits {
		word, err := list.Word(int(full.uint(off, wordBits)))
		if err != nil {
			return "", err
		}
		words = append(words, word)
	}
	return strings.Join(words, " "), nil
}

// ToEntropy recovers the entropy from a checksummed mnemonic sentence.
// The claimed checksum (the trailing bits beyond the entropy portion) is
// recomputed from the entropy and compared bit for bit; a mismatch is
// reported as ErrChecksum with both values.
func ToEntropy(mnemonic string, list *wordlist.List) (Bits, error) {
	words := strings.Fields(mnemonic)
	if !validWordCount(len(words)) {
		return Bits{}, fmt.Errorf("%w: %d words, want one of %v", ErrWordCount, len(words), wordCounts)
	}

	var full Bits
	for _, word := range words {
		index, err := list.Index(word)
		if err != nil {
			return Bits{}, err
		}
		full = full.appendUint(uint32(index), wordBits)
	}

	// The entropy portion is the leftmost 32/33 of the bits, the
	// remainder is the claimed checksum.
	entropyBits := full.Len() * 32 / 33
	entropy := full.slice(0, entropyBits)
	claimed := full.slice(entropyBits, full.Len())

	checksum, err := Checksum(entropy)
	if err != nil {
		return Bits{}, err
	}
	if !claimed.Equal(checksum) {
		return Bits{}, fmt.Errorf("%w: got %s, want %s", ErrChecksum, claimed, checksum)
	}
	return entropy, nil
}

// GenerateMnemonic creates a fresh mnemonic of the given entropy size
// from the system's cryptographic random source.
func GenerateMnemonic(bits int, list *wordlist.List) (string, error) {
	entropy, err := GenerateEntropy(bits)
	if err != nil {
		return "", err
	}
	return FromEntropy(entropy, list)
}
