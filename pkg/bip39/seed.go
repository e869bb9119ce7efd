package bip39

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stonebridge-tech/bedrock/pkg/wordlist"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// PBKDF2 parameters fixed by BIP-39.
const (
	seedIterations = 2048
	seedSaltPrefix = "mnemonic"
)

// ErrSeedLength rejects master-key derivation from a seed that is not
// exactly SeedSize bytes.
var ErrSeedLength = errors.New("invalid seed length")

// Seed derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-HMAC-SHA512. The mnemonic checksum is verified against
// the English wordlist first; use UncheckedSeed to skip verification.
func Seed(mnemonic, passphrase string) ([]byte, error) {
	list, err := wordlist.ForLanguage(wordlist.English)
	if err != nil {
		return nil, err
	}
	if _, err := ToEntropy(mnemonic, list); err != nil {
		return nil, err
	}
	return UncheckedSeed(mnemonic, passphrase), nil
}

// UncheckedSeed derives the seed without verifying the mnemonic
// checksum. Derivation itself is wordlist-agnostic: the mnemonic is
// stripped of spurious whitespace, NFKD-normalized along with the
// passphrase, and fed to PBKDF2 with the salt "mnemonic"+passphrase.
func UncheckedSeed(mnemonic, passphrase string) []byte {
	password := norm.NFKD.String(strings.Join(strings.Fields(mnemonic), " "))
	salt := norm.NFKD.String(seedSaltPrefix + passphrase)
	return pbkdf2.Key([]byte(password), []byte(salt), seedIterations, SeedSize, sha512.New)
}

// MasterKey derives the BIP-32 root master extended private key from a
// mnemonic, serialized in Base58Check with the network's private key
// version bytes (xprv for mainnet, tprv for test networks).
func MasterKey(mnemonic, passphrase string, params *chaincfg.Params) (string, error) {
	seed, err := Seed(mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	defer zero(seed)
	return MasterKeyFromSeed(seed, params)
}

// MasterKeyFromSeed derives the master extended private key from an
// existing 64-byte seed.
func MasterKeyFromSeed(seed []byte, params *chaincfg.Params) (string, error) {
	if len(seed) != SeedSize {
		return "", fmt.Errorf("%w: %d bytes, want %d", ErrSeedLength, len(seed), SeedSize)
	}
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", fmt.Errorf("derive master key: %w", err)
	}
	key.Version = params.HDPrivateKeyID[:]
	return key.String(), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
