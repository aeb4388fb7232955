// Package mask turns placement strings into hashcat .hcmask lines.
//
// A line is the custom charsets of a capitalization mode joined by commas,
// followed by the mask itself, one "?N" token per position:
//
//	bcdfghjklmnpqrstvwxyz,aeiou,?1?2?1?2
package mask

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/lth/maskgen/internal/placement"
)

const (
	DefaultConsonants = "bcdfghjklmnpqrstvwxyz"
	DefaultVowels     = "aeiou"
)

// Charsets are the usable consonants and vowels, in any case.
type Charsets struct {
	Consonants string
	Vowels     string
}

func (c Charsets) lowerConsonants() string { return strings.ToLower(c.Consonants) }
func (c Charsets) lowerVowels() string     { return strings.ToLower(c.Vowels) }
func (c Charsets) upperConsonants() string { return strings.ToUpper(c.Consonants) }
func (c Charsets) upperVowels() string     { return strings.ToUpper(c.Vowels) }

// Token is the placeholder for custom charset group n.
func Token(n int) string {
	return "?" + strconv.Itoa(n)
}

// Formatter renders placement strings for one mode and charset pair.
type Formatter struct {
	mode   Mode
	groups []string
	prefix string
	sizes  []uint64
}

func NewFormatter(mode Mode, charsets Charsets) *Formatter {
	if !mode.Valid() {
		mode = DefaultMode
	}
	groups := mode.variant().groups(charsets)

	sizes := make([]uint64, len(groups))
	for i, g := range groups {
		sizes[i] = distinctRunes(g)
	}

	return &Formatter{
		mode:   mode,
		groups: groups,
		prefix: strings.Join(groups, ","),
		sizes:  sizes,
	}
}

// Mask returns the placeholder string for pattern.
func (f *Formatter) Mask(pattern string) string {
	var b strings.Builder
	b.Grow(2 * len(pattern))
	group := f.mode.variant().group
	for i := 0; i < len(pattern); i++ {
		b.WriteString(Token(group(i, placement.Symbol(pattern[i]))))
	}
	return b.String()
}

// Line returns the full .hcmask record for pattern, without a newline.
func (f *Formatter) Line(pattern string) string {
	return f.prefix + "," + f.Mask(pattern)
}

// Keyspace is the number of candidates the mask for pattern expands to,
// saturating at math.MaxUint64. Characters repeated within a group count
// once.
func (f *Formatter) Keyspace(pattern string) uint64 {
	if len(pattern) == 0 {
		return 0
	}
	group := f.mode.variant().group
	total := uint64(1)
	for i := 0; i < len(pattern); i++ {
		total = mulSat(total, f.sizes[group(i, placement.Symbol(pattern[i]))-1])
	}
	return total
}

func distinctRunes(s string) uint64 {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return uint64(len(seen))
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// AddSat adds two keyspace totals, saturating at math.MaxUint64.
func AddSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
