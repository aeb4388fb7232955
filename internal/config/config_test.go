package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lth/maskgen/internal/mask"
)

func TestResolveDefaults(t *testing.T) {
	cfg := Resolve(Input{}, nil)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "core_word_8char_mode1.hcmask", cfg.Output)
}

func TestResolveFallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := Resolve(Input{
		Length:        "eight",
		MaxConsonants: "0",
		MaxVowels:     "-2",
		Consonants:    "   ",
		Mode:          "9",
	}, logger)

	assert.Equal(t, DefaultLength, cfg.Length)
	assert.Equal(t, DefaultMaxConsonants, cfg.MaxConsonants)
	assert.Equal(t, DefaultMaxVowels, cfg.MaxVowels)
	assert.Equal(t, mask.DefaultConsonants, cfg.Consonants)
	assert.Equal(t, mask.DefaultVowels, cfg.Vowels)
	assert.Equal(t, mask.Lower, cfg.Mode)

	assert.Contains(t, buf.String(), "field=length")
	assert.Contains(t, buf.String(), "unrecognized capitalization mode")
}

func TestResolveCustom(t *testing.T) {
	cfg := Resolve(Input{
		Length:        " 6 ",
		MaxConsonants: "3",
		MaxVowels:     "2",
		Consonants:    "bdfgklmnprst",
		Vowels:        "aeio",
		Mode:          "title",
	}, nil)

	assert.Equal(t, Config{
		Length:        6,
		MaxConsonants: 3,
		MaxVowels:     2,
		Consonants:    "bdfgklmnprst",
		Vowels:        "aeio",
		Mode:          mask.Title,
		Output:        "core_word_6char_mode3.hcmask",
	}, cfg)
}

func TestMerge(t *testing.T) {
	base := Input{Length: "8", Mode: "1", Output: "a.hcmask"}
	over := Input{Length: "10", Mode: " ", Vowels: "ae"}

	got := base.Merge(over)
	assert.Equal(t, Input{Length: "10", Mode: "1", Vowels: "ae", Output: "a.hcmask"}, got)
}

func TestThresholdsAndCharsets(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.Thresholds().MaxConsonants)
	assert.Equal(t, 3, cfg.Thresholds().MaxVowels)
	assert.Equal(t, mask.Charsets{Consonants: mask.DefaultConsonants, Vowels: mask.DefaultVowels}, cfg.Charsets())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maskgen.toml")
	content := `
[mask]
length = 6
max_consonants = "3"
max_vowels = 2.5
mode = 4

[charsets]
consonants = "bcd"

[output]
file = "out.hcmask"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	in, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Input{
		Length:        "6",
		MaxConsonants: "3",
		MaxVowels:     "2.5",
		Mode:          "4",
		Consonants:    "bcd",
		Output:        "out.hcmask",
	}, in)

	cfg := Resolve(in, nil)
	assert.Equal(t, DefaultMaxVowels, cfg.MaxVowels)
	assert.Equal(t, mask.Mixed, cfg.Mode)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigFile)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[mask\nlength = "), 0o644))
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrConfigFile)
}

func TestParseEnv(t *testing.T) {
	in, err := parseEnv(env.Options{Environment: map[string]string{
		"MASKGEN_LENGTH":     "5",
		"MASKGEN_MODE":       "upper",
		"MASKGEN_VOWELS":     "aeiouy",
		"MASKGEN_UNRELATED":  "x",
		"MASKGEN_MAX_VOWELS": "two",
	}})
	require.NoError(t, err)
	assert.Equal(t, Input{Length: "5", Mode: "upper", Vowels: "aeiouy", MaxVowels: "two"}, in)

	cfg := Resolve(in, nil)
	assert.Equal(t, 5, cfg.Length)
	assert.Equal(t, DefaultMaxVowels, cfg.MaxVowels)
	assert.Equal(t, "core_word_5char_mode2.hcmask", cfg.Output)
}
