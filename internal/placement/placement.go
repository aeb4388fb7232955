// Package placement enumerates consonant/vowel skeletons of a fixed length
// and filters them by run length.
package placement

import (
	"iter"
	"math"
	"strings"
)

// Symbol is one position of a placement string.
type Symbol byte

const (
	Consonant Symbol = 'c'
	Vowel     Symbol = 'v'
)

// Alphabet is the enumeration order at every position.
var Alphabet = []Symbol{Consonant, Vowel}

// All yields every placement string of the given length, starting from the
// all-consonant string and advancing like an odometer (rightmost position
// fastest). Nothing is yielded for length < 1.
func All(length int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if length < 1 {
			return
		}

		indices := make([]int, length)
		pattern := make([]byte, length)
		for i := range pattern {
			pattern[i] = byte(Alphabet[0])
		}

		for {
			if !yield(string(pattern)) {
				return
			}

			pos := length - 1
			for pos >= 0 {
				indices[pos]++
				if indices[pos] < len(Alphabet) {
					pattern[pos] = byte(Alphabet[indices[pos]])
					break
				}
				indices[pos] = 0
				pattern[pos] = byte(Alphabet[0])
				pos--
			}

			if pos < 0 {
				return
			}
		}
	}
}

// Count returns the size of the enumeration space, 2^length. It saturates at
// math.MaxUint64 for lengths that do not fit.
func Count(length int) uint64 {
	if length < 1 {
		return 0
	}
	if length >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << length
}

// Thresholds are the first disallowed run lengths.
type Thresholds struct {
	MaxConsonants int
	MaxVowels     int
}

// Filter rejects placement strings that contain a run of consonants or
// vowels at least as long as the configured thresholds.
type Filter struct {
	badConsonants string
	badVowels     string
}

func NewFilter(t Thresholds) Filter {
	return Filter{
		badConsonants: strings.Repeat(string(Consonant), max(t.MaxConsonants, 1)),
		badVowels:     strings.Repeat(string(Vowel), max(t.MaxVowels, 1)),
	}
}

// Allows reports whether pattern contains neither forbidden run.
func (f Filter) Allows(pattern string) bool {
	if strings.Contains(pattern, f.badConsonants) {
		return false
	}
	if strings.Contains(pattern, f.badVowels) {
		return false
	}
	return true
}

// Apply keeps the order of seq and drops every pattern Allows rejects.
func (f Filter) Apply(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for p := range seq {
			if f.Allows(p) && !yield(p) {
				return
			}
		}
	}
}
