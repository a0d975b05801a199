package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// keySeparator joins the caption and sentence index in serialised keys.
const keySeparator = "_"

// Key identifies one sentence of a document: (caption index, sentence index).
// It is a value type; compare with == and order with Less.
type Key struct {
	Caption  int
	Sentence int
}

// NewKey returns the key for the given caption and sentence indices.
func NewKey(caption, sentence int) Key {
	return Key{Caption: caption, Sentence: sentence}
}

// String returns the storage form "{caption}_{sentence}".
func (k Key) String() string {
	return strconv.Itoa(k.Caption) + keySeparator + strconv.Itoa(k.Sentence)
}

// Less orders keys numerically by caption, then sentence.
func (k Key) Less(other Key) bool {
	if k.Caption != other.Caption {
		return k.Caption < other.Caption
	}
	return k.Sentence < other.Sentence
}

// After reports whether k comes strictly after other in document order.
func (k Key) After(other Key) bool {
	return other.Less(k)
}

// ParseKey parses the storage form of a key.
// The legacy caption-only form "{caption}" is accepted and normalised to
// (caption, 0).
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	captionPart, sentencePart, composite := strings.Cut(s, keySeparator)

	caption, err := parseIndex(captionPart)
	if err != nil {
		return Key{}, fmt.Errorf("%w: key %q: %v", ErrInvalidInput, s, err)
	}
	if !composite {
		return Key{Caption: caption}, nil
	}

	sentence, err := parseIndex(sentencePart)
	if err != nil {
		return Key{}, fmt.Errorf("%w: key %q: %v", ErrInvalidInput, s, err)
	}
	return Key{Caption: caption, Sentence: sentence}, nil
}

// IsLegacyKey reports whether s uses the caption-only storage form.
func IsLegacyKey(s string) bool {
	return !strings.Contains(s, keySeparator)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}

// MarshalText implements encoding.TextMarshaler so keys can index JSON maps.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SortKeys sorts keys in document order.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}
