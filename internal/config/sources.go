package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrConfigFile = errors.New("config file")
	ErrEnv        = errors.New("environment")
)

// fileConfig mirrors the TOML layout. Numeric fields accept integers or
// strings so that bad values reach the same fallback as any other input.
type fileConfig struct {
	Mask struct {
		Length        any `toml:"length"`
		MaxConsonants any `toml:"max_consonants"`
		MaxVowels     any `toml:"max_vowels"`
		Mode          any `toml:"mode"`
	} `toml:"mask"`

	Charsets struct {
		Consonants string `toml:"consonants"`
		Vowels     string `toml:"vowels"`
	} `toml:"charsets"`

	Output struct {
		File string `toml:"file"`
	} `toml:"output"`
}

// LoadFile reads a TOML config file such as:
//
//	[mask]
//	length = 8
//	max_consonants = 4
//	max_vowels = 3
//	mode = "title"
//
//	[charsets]
//	consonants = "bcdfghklmnprstvw"
//	vowels = "aeiou"
//
//	[output]
//	file = "masks.hcmask"
func LoadFile(path string) (Input, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Input{}, fmt.Errorf("%w %s: %w", ErrConfigFile, path, err)
	}

	return Input{
		Length:        scalar(fc.Mask.Length),
		MaxConsonants: scalar(fc.Mask.MaxConsonants),
		MaxVowels:     scalar(fc.Mask.MaxVowels),
		Mode:          scalar(fc.Mask.Mode),
		Consonants:    fc.Charsets.Consonants,
		Vowels:        fc.Charsets.Vowels,
		Output:        fc.Output.File,
	}, nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FromEnv reads MASKGEN_* variables, loading ./.env first when present.
// Variables already set in the process take precedence over .env.
func FromEnv() (Input, error) {
	// .env is optional
	_ = godotenv.Load()
	return parseEnv(env.Options{})
}

func parseEnv(opts env.Options) (Input, error) {
	var in Input
	if err := env.ParseWithOptions(&in, opts); err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrEnv, err)
	}
	return in, nil
}
