package bip39

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
)

// Reference vectors from the English BIP-39 test set, passphrase "TREZOR".
var seedVectors = []struct {
	mnemonic string
	seed     string
}{
	{
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
	},
	{
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
		"ac27495480225222079d7be181583751e86f571027b0497b5b5d11218e0a8a13332572917f0f8e5a589620c6f15b11c61dee327651a14c34e18231052e48c069",
	},
	{
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
		"bda85446c68413707090a52022edd26a1c9462295029f2e60cd7c4f2bbd3097170af7a4d73245cafa9c3cca8d561a7c3de6f5d4a10be8ed2a5e608d68f92fcc8",
	},
}

func TestSeed_Vectors(t *testing.T) {
	for _, tt := range seedVectors {
		t.Run(tt.mnemonic[:12], func(t *testing.T) {
			seed, err := Seed(tt.mnemonic, "TREZOR")
			if err != nil {
				t.Fatalf("Seed() error: %v", err)
			}
			want, err := hex.DecodeString(tt.seed)
			if err != nil {
				t.Fatalf("decode vector: %v", err)
			}
			if !bytes.Equal(seed, want) {
				t.Errorf("Seed() = %x, want %s", seed, tt.seed)
			}
		})
	}
}

func TestSeed_Length(t *testing.T) {
	seed, err := Seed(seedVectors[0].mnemonic, "")
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(seed) != SeedSize {
		t.Errorf("len(seed) = %d, want %d", len(seed), SeedSize)
	}
}

func TestSeed_PassphraseChangesSeed(t *testing.T) {
	mnemonic := seedVectors[0].mnemonic
	a, err := Seed(mnemonic, "")
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	b, err := Seed(mnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("different passphrases should derive different seeds")
	}
}

func TestSeed_RejectsBadChecksum(t *testing.T) {
	bad := strings.Repeat("abandon ", 11) + "abandon"
	if _, err := Seed(bad, ""); !errors.Is(err, ErrChecksum) {
		t.Errorf("Seed() error = %v, want ErrChecksum", err)
	}
	if _, err := Seed("not a mnemonic", ""); !errors.Is(err, ErrWordCount) {
		t.Errorf("Seed() error = %v, want ErrWordCount", err)
	}
}

func TestUncheckedSeed(t *testing.T) {
	// Derivation is checksum-agnostic: an invalid sentence still yields
	// 64 bytes, and a valid one matches Seed.
	bad := strings.Repeat("abandon ", 11) + "abandon"
	if got := UncheckedSeed(bad, ""); len(got) != SeedSize {
		t.Errorf("len(UncheckedSeed()) = %d, want %d", len(got), SeedSize)
	}

	mnemonic := seedVectors[0].mnemonic
	checked, err := Seed(mnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if got := UncheckedSeed(mnemonic, "TREZOR"); !bytes.Equal(got, checked) {
		t.Error("UncheckedSeed should match Seed for a valid mnemonic")
	}
}

func TestUncheckedSeed_WhitespaceCollapsed(t *testing.T) {
	clean := seedVectors[0].mnemonic
	messy := "\t " + strings.ReplaceAll(clean, " ", "  ") + " \n"
	if !bytes.Equal(UncheckedSeed(clean, "TREZOR"), UncheckedSeed(messy, "TREZOR")) {
		t.Error("internal whitespace should not change the derived seed")
	}
}

// Master keys for the all-zero entropy vectors, passphrase "TREZOR".
func TestMasterKey_Vectors(t *testing.T) {
	tests := []struct {
		mnemonic string
		key      string
	}{
		{
			seedVectors[0].mnemonic,
			"xprv9s21ZrQH143K3h3fDYiay8mocZ3afhfULfb5GX8kCBdno77K4HiA5Zv68p2GsuziVYnVMdXF2j2F8kBkVP98pvmvXja4Z3nYW9szEiTHfEz",
		},
		{
			seedVectors[2].mnemonic,
			"xprv9s21ZrQH143K32qBagUJAMU2LsHg3ka7jqMcV98Y7gVeVyNStwYS3U7yVVoDZ4btbRNf4h6ibWpY22iRmXq35qgLs79f312g2kj5539ebPM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic[:12], func(t *testing.T) {
			got, err := MasterKey(tt.mnemonic, "TREZOR", &chaincfg.MainNetParams)
			if err != nil {
				t.Fatalf("MasterKey() error: %v", err)
			}
			if got != tt.key {
				t.Errorf("MasterKey() = %s, want %s", got, tt.key)
			}
		})
	}
}

func TestMasterKey_NetworkVersion(t *testing.T) {
	mnemonic := seedVectors[0].mnemonic
	main, err := MasterKey(mnemonic, "", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("MasterKey(mainnet) error: %v", err)
	}
	if !strings.HasPrefix(main, "xprv") {
		t.Errorf("mainnet key = %s, want xprv prefix", main)
	}

	test, err := MasterKey(mnemonic, "", &chaincfg.TestNet3Params)
	if err != nil {
		t.Fatalf("MasterKey(testnet) error: %v", err)
	}
	if !strings.HasPrefix(test, "tprv") {
		t.Errorf("testnet key = %s, want tprv prefix", test)
	}
	if main == test {
		t.Error("mainnet and testnet keys should differ in version bytes")
	}
}

func TestMasterKeyFromSeed_Length(t *testing.T) {
	if _, err := MasterKeyFromSeed(make([]byte, 63), &chaincfg.MainNetParams); !errors.Is(err, ErrSeedLength) {
		t.Errorf("MasterKeyFromSeed(63 bytes) error = %v, want ErrSeedLength", err)
	}
	if _, err := MasterKeyFromSeed(make([]byte, SeedSize), &chaincfg.MainNetParams); err != nil {
		t.Errorf("MasterKeyFromSeed(64 bytes) error: %v", err)
	}
}
