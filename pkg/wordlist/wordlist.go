// Package wordlist provides the BIP-39 wordlists used for mnemonic encoding.
package wordlist

import (
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// ListSize is the number of words in every BIP-39 wordlist (2^11).
const ListSize = 2048

// Language identifies a BIP-39 wordlist.
type Language string

// Supported wordlist languages.
const (
	English            Language = "english"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	Czech              Language = "czech"
	French             Language = "french"
	Italian            Language = "italian"
	Japanese           Language = "japanese"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
)

// Lookup errors.
var (
	ErrUnknownLanguage = errors.New("unknown wordlist language")
	ErrUnknownWord     = errors.New("word not in wordlist")
	ErrIndexRange      = errors.New("word index out of range")
)

var lists = map[Language][]string{
	English:            wordlists.English,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
	Czech:              wordlists.Czech,
	French:             wordlists.French,
	Italian:            wordlists.Italian,
	Japanese:           wordlists.Japanese,
	Korean:             wordlists.Korean,
	Spanish:            wordlists.Spanish,
}

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{
		English, ChineseSimplified, ChineseTraditional, Czech,
		French, Italian, Japanese, Korean, Spanish,
	}
}

// List is an indexed wordlist for a single language.
type List struct {
	lang  Language
	words []string
	index map[string]int
}

// ForLanguage returns the wordlist for the given language.
func ForLanguage(lang Language) (*List, error) {
	words, ok := lists[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	index := make(map[string]int, len(words))
	for i, w := range words {
		index[norm.NFKD.String(w)] = i
	}
	return &List{lang: lang, words: words, index: index}, nil
}

// Language returns the list's language.
func (l *List) Language() Language {
	return l.lang
}

// Size returns the number of words in the list.
func (l *List) Size() int {
	return len(l.words)
}

// Word returns the word at the given index.
func (l *List) Word(index int) (string, error) {
	if index < 0 || index >= len(l.words) {
		return "", fmt.Errorf("%w: %d", ErrIndexRange, index)
	}
	return l.words[index], nil
}

// Index returns the position of the given word in the list.
// Lookups are NFKD-normalized, so composed and decomposed spellings of
// accented words resolve to the same index.
func (l *List) Index(word string) (int, error) {
	i, ok := l.index[norm.NFKD.String(word)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return i, nil
}
