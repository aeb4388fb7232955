package mask

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lth/maskgen/internal/placement"
)

// Mode selects how consonant/vowel positions are cased.
type Mode int

const (
	Lower Mode = iota + 1
	Upper
	Title
	Mixed
	InvertedTitle
)

// DefaultMode is used whenever a selection is missing or unrecognised.
const DefaultMode = Lower

// variant carries everything a mode needs: its charset groups in emission
// order and the group a symbol uses at a position (1-based).
type variant struct {
	name        string
	description string
	groups      func(Charsets) []string
	group       func(pos int, s placement.Symbol) int
}

func flatGroup(_ int, s placement.Symbol) int {
	if s == placement.Consonant {
		return 1
	}
	return 2
}

func headGroup(pos int, s placement.Symbol) int {
	g := flatGroup(pos, s)
	if pos > 0 {
		g += 2
	}
	return g
}

var variants = map[Mode]variant{
	Lower: {
		name:        "lower",
		description: "All Lowercase",
		groups: func(c Charsets) []string {
			return []string{c.lowerConsonants(), c.lowerVowels()}
		},
		group: flatGroup,
	},
	Upper: {
		name:        "upper",
		description: "All Uppercase",
		groups: func(c Charsets) []string {
			return []string{c.upperConsonants(), c.upperVowels()}
		},
		group: flatGroup,
	},
	Title: {
		name:        "title",
		description: "Title Case (First letter Capital, rest lowercase)",
		groups: func(c Charsets) []string {
			return []string{c.upperConsonants(), c.upperVowels(), c.lowerConsonants(), c.lowerVowels()}
		},
		group: headGroup,
	},
	Mixed: {
		name:        "mixed",
		description: "Mixed Case (Upper + Lower combined)",
		groups: func(c Charsets) []string {
			return []string{c.lowerConsonants() + c.upperConsonants(), c.lowerVowels() + c.upperVowels()}
		},
		group: flatGroup,
	},
	InvertedTitle: {
		name:        "inverted",
		description: "Inverted Title (First letter lowercase, rest Capital)",
		groups: func(c Charsets) []string {
			return []string{c.lowerConsonants(), c.lowerVowels(), c.upperConsonants(), c.upperVowels()}
		},
		group: headGroup,
	},
}

// Modes lists every mode in selection order.
func Modes() []Mode {
	return []Mode{Lower, Upper, Title, Mixed, InvertedTitle}
}

func (m Mode) Valid() bool {
	_, ok := variants[m]
	return ok
}

func (m Mode) String() string {
	if v, ok := variants[m]; ok {
		return v.name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Description is the human-readable label shown in menus.
func (m Mode) Description() string {
	if v, ok := variants[m]; ok {
		return v.description
	}
	return ""
}

// GroupCount is the number of charset fields a line in this mode carries.
func (m Mode) GroupCount() int {
	return len(m.variant().groups(Charsets{}))
}

func (m Mode) variant() variant {
	if v, ok := variants[m]; ok {
		return v
	}
	return variants[DefaultMode]
}

// ParseMode accepts a menu number ("1".."5") or a mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mode(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("unknown capitalization mode %d (want 1-%d)", n, len(variants))
	}
	for _, m := range Modes() {
		if variants[m].name == s {
			return m, nil
		}
	}
	switch s {
	case "lowercase":
		return Lower, nil
	case "uppercase":
		return Upper, nil
	case "inverted-title", "inverted_title":
		return InvertedTitle, nil
	}
	return 0, fmt.Errorf("unknown capitalization mode %q", s)
}
