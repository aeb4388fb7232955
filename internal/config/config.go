// Package config gathers generator settings from files, the environment,
// flags and prompts, and resolves them into one immutable Config.
//
// Every source produces an Input of raw strings. Inputs are layered with
// Merge and turned into a Config by Resolve, which never fails: values that
// do not parse, or are out of range, fall back to the field default.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lth/maskgen/internal/mask"
	"github.com/lth/maskgen/internal/placement"
)

const (
	DefaultLength        = 8
	DefaultMaxConsonants = 4
	DefaultMaxVowels     = 3
)

// Config is the resolved generator configuration.
type Config struct {
	Length        int
	MaxConsonants int
	MaxVowels     int
	Consonants    string
	Vowels        string
	Mode          mask.Mode
	Output        string
}

func Default() Config {
	return Config{
		Length:        DefaultLength,
		MaxConsonants: DefaultMaxConsonants,
		MaxVowels:     DefaultMaxVowels,
		Consonants:    mask.DefaultConsonants,
		Vowels:        mask.DefaultVowels,
		Mode:          mask.DefaultMode,
		Output:        DefaultOutput(DefaultLength, mask.DefaultMode),
	}
}

// DefaultOutput is the file name used when no output path is given.
func DefaultOutput(length int, mode mask.Mode) string {
	return fmt.Sprintf("core_word_%dchar_mode%d.hcmask", length, int(mode))
}

func (c Config) Thresholds() placement.Thresholds {
	return placement.Thresholds{MaxConsonants: c.MaxConsonants, MaxVowels: c.MaxVowels}
}

func (c Config) Charsets() mask.Charsets {
	return mask.Charsets{Consonants: c.Consonants, Vowels: c.Vowels}
}

// Input holds unvalidated settings as the operator supplied them. Empty
// fields are unset.
type Input struct {
	Length        string `env:"MASKGEN_LENGTH"`
	MaxConsonants string `env:"MASKGEN_MAX_CONSONANTS"`
	MaxVowels     string `env:"MASKGEN_MAX_VOWELS"`
	Consonants    string `env:"MASKGEN_CONSONANTS"`
	Vowels        string `env:"MASKGEN_VOWELS"`
	Mode          string `env:"MASKGEN_MODE"`
	Output        string `env:"MASKGEN_OUTPUT"`
}

// Merge returns in with every non-blank field of over applied on top.
func (in Input) Merge(over Input) Input {
	pick := func(base, top string) string {
		if strings.TrimSpace(top) != "" {
			return top
		}
		return base
	}
	return Input{
		Length:        pick(in.Length, over.Length),
		MaxConsonants: pick(in.MaxConsonants, over.MaxConsonants),
		MaxVowels:     pick(in.MaxVowels, over.MaxVowels),
		Consonants:    pick(in.Consonants, over.Consonants),
		Vowels:        pick(in.Vowels, over.Vowels),
		Mode:          pick(in.Mode, over.Mode),
		Output:        pick(in.Output, over.Output),
	}
}

// Resolve validates in and fills defaults. Fallbacks are logged at warn
// level; a nil logger discards them.
func Resolve(in Input, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg := Config{
		Length:        positiveInt(logger, "length", in.Length, DefaultLength),
		MaxConsonants: positiveInt(logger, "max_consonants", in.MaxConsonants, DefaultMaxConsonants),
		MaxVowels:     positiveInt(logger, "max_vowels", in.MaxVowels, DefaultMaxVowels),
		Consonants:    strings.TrimSpace(in.Consonants),
		Vowels:        strings.TrimSpace(in.Vowels),
		Mode:          mask.DefaultMode,
		Output:        strings.TrimSpace(in.Output),
	}

	if cfg.Consonants == "" {
		cfg.Consonants = mask.DefaultConsonants
	}
	if cfg.Vowels == "" {
		cfg.Vowels = mask.DefaultVowels
	}

	if s := strings.TrimSpace(in.Mode); s != "" {
		m, err := mask.ParseMode(s)
		if err != nil {
			logger.Warn("unrecognized capitalization mode, using default",
				slog.String("value", s), slog.String("default", mask.DefaultMode.String()))
		} else {
			cfg.Mode = m
		}
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Length, cfg.Mode)
	}

	return cfg
}

func positiveInt(logger *slog.Logger, field, raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		logger.Warn("invalid value, using default",
			slog.String("field", field), slog.String("value", raw), slog.Int("default", def))
		return def
	}
	return n
}
