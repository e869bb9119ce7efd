package bip39

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"
)

func TestEntropyFromBinary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
		err  error
	}{
		{name: "all zeros 128", in: strings.Repeat("0", 128), want: 128},
		{name: "all ones 256", in: strings.Repeat("1", 256), want: 256},
		{name: "leading zeros kept", in: strings.Repeat("0", 127) + "1", want: 128},
		{name: "160 bits", in: strings.Repeat("01", 80), want: 160},
		{name: "empty", in: "", err: ErrEntropyLength},
		{name: "127 bits", in: strings.Repeat("1", 127), err: ErrEntropyLength},
		{name: "129 bits", in: strings.Repeat("1", 129), err: ErrEntropyLength},
		{name: "bad digit", in: strings.Repeat("0", 127) + "2", err: ErrEntropyFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntropyFromBinary(tt.in)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("EntropyFromBinary() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EntropyFromBinary() error: %v", err)
			}
			if got.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", got.Len(), tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestEntropyFromBytes(t *testing.T) {
	e, err := EntropyFromBytes(make([]byte, 16))
	if err != nil {
		t.Fatalf("EntropyFromBytes() error: %v", err)
	}
	if e.Len() != 128 {
		t.Errorf("Len() = %d, want 128", e.Len())
	}
	if e.String() != strings.Repeat("0", 128) {
		t.Error("all-zero bytes should keep every leading zero bit")
	}

	if _, err := EntropyFromBytes(make([]byte, 17)); !errors.Is(err, ErrEntropyLength) {
		t.Errorf("EntropyFromBytes(17 bytes) error = %v, want ErrEntropyLength", err)
	}
	if _, err := EntropyFromBytes(nil); !errors.Is(err, ErrEntropyLength) {
		t.Errorf("EntropyFromBytes(nil) error = %v, want ErrEntropyLength", err)
	}
}

func TestEntropyFromInt(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Int
		want string
	}{
		{name: "zero pads to 128", in: big.NewInt(0), want: strings.Repeat("0", 128)},
		{name: "one pads to 128", in: big.NewInt(1), want: strings.Repeat("0", 127) + "1"},
		{
			name: "129 bits pads to 160",
			in:   new(big.Int).Lsh(big.NewInt(1), 128),
			want: strings.Repeat("0", 31) + "1" + strings.Repeat("0", 128),
		},
		{
			name: "257 bits keeps leftmost 256",
			in:   new(big.Int).Lsh(big.NewInt(1), 256),
			want: "1" + strings.Repeat("0", 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntropyFromInt(tt.in)
			if err != nil {
				t.Fatalf("EntropyFromInt() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}

	if _, err := EntropyFromInt(big.NewInt(-1)); !errors.Is(err, ErrEntropyFormat) {
		t.Errorf("EntropyFromInt(-1) error = %v, want ErrEntropyFormat", err)
	}
}

func TestGenerateEntropy(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		e, err := GenerateEntropy(bits)
		if err != nil {
			t.Fatalf("GenerateEntropy(%d) error: %v", bits, err)
		}
		if e.Len() != bits {
			t.Errorf("GenerateEntropy(%d).Len() = %d", bits, e.Len())
		}
	}

	e1, _ := GenerateEntropy(256)
	e2, _ := GenerateEntropy(256)
	if e1.Equal(e2) {
		t.Error("two generated entropies should not be identical")
	}

	if _, err := GenerateEntropy(100); !errors.Is(err, ErrEntropyLength) {
		t.Errorf("GenerateEntropy(100) error = %v, want ErrEntropyLength", err)
	}
}

func TestBits_Bytes(t *testing.T) {
	e, err := EntropyFromBytes([]byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01})
	if err != nil {
		t.Fatalf("EntropyFromBytes() error: %v", err)
	}
	want := []byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	if !bytes.Equal(e.Bytes(), want) {
		t.Errorf("Bytes() = %x, want %x", e.Bytes(), want)
	}
}

func TestChecksum_Lengths(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		e, err := GenerateEntropy(bits)
		if err != nil {
			t.Fatalf("GenerateEntropy(%d) error: %v", bits, err)
		}
		cs, err := Checksum(e)
		if err != nil {
			t.Fatalf("Checksum() error: %v", err)
		}
		if cs.Len() != bits/32 {
			t.Errorf("Checksum(%d bits).Len() = %d, want %d", bits, cs.Len(), bits/32)
		}
	}
}

// TestChecksum_LeadingZeros pins the checksums of all-zero entropy.
// SHA-256 of 16 zero bytes begins 0x37 (binary 0011...), so the 4-bit
// checksum starts with two zero bits; an implementation that converts
// the digest to an integer before slicing drops them.
func TestChecksum_LeadingZeros(t *testing.T) {
	e128, err := EntropyFromBytes(make([]byte, 16))
	if err != nil {
		t.Fatalf("EntropyFromBytes() error: %v", err)
	}
	cs, err := Checksum(e128)
	if err != nil {
		t.Fatalf("Checksum() error: %v", err)
	}
	if cs.String() != "0011" {
		t.Errorf("checksum of 128 zero bits = %s, want 0011", cs)
	}

	// SHA-256 of 32 zero bytes begins 0x66 (binary 01100110).
	e256, err := EntropyFromBytes(make([]byte, 32))
	if err != nil {
		t.Fatalf("EntropyFromBytes() error: %v", err)
	}
	cs, err = Checksum(e256)
	if err != nil {
		t.Fatalf("Checksum() error: %v", err)
	}
	if cs.String() != "01100110" {
		t.Errorf("checksum of 256 zero bits = %s, want 01100110", cs)
	}
}

func TestChecksum_InvalidLength(t *testing.T) {
	_, err := Checksum(Bits{})
	if !errors.Is(err, ErrEntropyLength) {
		t.Errorf("Checksum(empty) error = %v, want ErrEntropyLength", err)
	}
}
