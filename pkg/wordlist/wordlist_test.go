package wordlist

import (
	"errors"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestForLanguage_AllLanguages(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(string(lang), func(t *testing.T) {
			list, err := ForLanguage(lang)
			if err != nil {
				t.Fatalf("ForLanguage(%q) error: %v", lang, err)
			}
			if list.Size() != ListSize {
				t.Errorf("Size() = %d, want %d", list.Size(), ListSize)
			}
			if list.Language() != lang {
				t.Errorf("Language() = %q, want %q", list.Language(), lang)
			}
		})
	}
}

func TestForLanguage_Unknown(t *testing.T) {
	_, err := ForLanguage("esperanto")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("ForLanguage(esperanto) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestList_KnownEnglishWords(t *testing.T) {
	list, err := ForLanguage(English)
	if err != nil {
		t.Fatalf("ForLanguage() error: %v", err)
	}

	// Fixed points of the English list.
	tests := []struct {
		word  string
		index int
	}{
		{"abandon", 0},
		{"ability", 1},
		{"about", 3},
		{"zoo", 2047},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := list.Index(tt.word)
			if err != nil {
				t.Fatalf("Index(%q) error: %v", tt.word, err)
			}
			if got != tt.index {
				t.Errorf("Index(%q) = %d, want %d", tt.word, got, tt.index)
			}
			w, err := list.Word(tt.index)
			if err != nil {
				t.Fatalf("Word(%d) error: %v", tt.index, err)
			}
			if w != tt.word {
				t.Errorf("Word(%d) = %q, want %q", tt.index, w, tt.word)
			}
		})
	}
}

func TestList_RoundTrip(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(string(lang), func(t *testing.T) {
			list, err := ForLanguage(lang)
			if err != nil {
				t.Fatalf("ForLanguage() error: %v", err)
			}
			for i := 0; i < list.Size(); i++ {
				w, err := list.Word(i)
				if err != nil {
					t.Fatalf("Word(%d) error: %v", i, err)
				}
				got, err := list.Index(w)
				if err != nil {
					t.Fatalf("Index(%q) error: %v", w, err)
				}
				if got != i {
					t.Fatalf("Index(Word(%d)) = %d", i, got)
				}
			}
		})
	}
}

func TestList_UnknownWord(t *testing.T) {
	list, err := ForLanguage(English)
	if err != nil {
		t.Fatalf("ForLanguage() error: %v", err)
	}

	_, err = list.Index("notaword")
	if !errors.Is(err, ErrUnknownWord) {
		t.Errorf("Index(notaword) error = %v, want ErrUnknownWord", err)
	}
}

func TestList_IndexRange(t *testing.T) {
	list, err := ForLanguage(English)
	if err != nil {
		t.Fatalf("ForLanguage() error: %v", err)
	}

	for _, idx := range []int{-1, ListSize, ListSize + 1} {
		if _, err := list.Word(idx); !errors.Is(err, ErrIndexRange) {
			t.Errorf("Word(%d) error = %v, want ErrIndexRange", idx, err)
		}
	}
}

// TestList_NormalizedLookup verifies that both composed (NFC) and
// decomposed (NFKD) spellings of every word resolve to the same index,
// whichever form the underlying list ships in.
func TestList_NormalizedLookup(t *testing.T) {
	for _, lang := range []Language{French, Spanish, Japanese, Korean, Czech} {
		t.Run(string(lang), func(t *testing.T) {
			list, err := ForLanguage(lang)
			if err != nil {
				t.Fatalf("ForLanguage() error: %v", err)
			}
			variants := 0
			for i := 0; i < list.Size(); i++ {
				w, _ := list.Word(i)
				composed := norm.NFC.String(w)
				decomposed := norm.NFKD.String(w)
				if composed != w || decomposed != w {
					variants++
				}
				for _, form := range []string{composed, decomposed} {
					got, err := list.Index(form)
					if err != nil {
						t.Fatalf("Index(%q form of %q) error: %v", form, w, err)
					}
					if got != i {
						t.Fatalf("Index(%q) = %d, want %d", form, got, i)
					}
				}
			}
			if variants == 0 && lang == French {
				t.Error("expected at least one accented word with distinct normal forms")
			}
		})
	}
}
