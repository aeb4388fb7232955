package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/lth/maskgen/internal/config"
	"github.com/lth/maskgen/internal/generator"
	"github.com/lth/maskgen/internal/prompt"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// largeLength is where the enumeration gets big enough to warn about.
const largeLength = 28

var (
	version = "1.0.0"

	length        int
	maxConsonants int
	maxVowels     int
	consonants    string
	vowels        string
	mode          string
	output        string
	configFile    string
	interactive   bool
	noProgress    bool
	verbose       bool
)

// app holds the process streams so commands can run against buffers.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}
}

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "maskgen",
		Short: "Core word hcmask generator - consonant/vowel masks for hashcat",
		Long: `maskgen v` + version + `
Generates hashcat .hcmask files describing every consonant/vowel layout of a
core word, minus layouts with too many consonants or vowels in a row.

Settings are read from built-in defaults, a TOML file (--config), MASKGEN_*
environment variables (and ./.env), flags and finally interactive prompts,
each overriding the previous. Prompts are written to stderr.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
		Run: func(cmd *cobra.Command, args []string) {
			a.exitOnError(a.generate(cmd))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&length, "length", "l", config.DefaultLength, "Core word length")
	flags.IntVarP(&maxConsonants, "max-consonants", "c", config.DefaultMaxConsonants, "Drop patterns with this many consecutive consonants")
	flags.IntVarP(&maxVowels, "max-vowels", "V", config.DefaultMaxVowels, "Drop patterns with this many consecutive vowels")
	flags.StringVar(&consonants, "consonants", "", "Consonants to use (default bcdfghjklmnpqrstvwxyz)")
	flags.StringVar(&vowels, "vowels", "", "Vowels to use (default aeiou)")
	flags.StringVarP(&mode, "mode", "m", "", "Capitalization mode: 1-5 or lower, upper, title, mixed, inverted (default lower)")
	flags.StringVarP(&output, "output", "o", "", "Output file, - for stdout (default core_word_<length>char_mode<mode>.hcmask)")
	flags.StringVarP(&configFile, "config", "C", "", "TOML config file")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for every setting")

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for every setting, then generate",
		Run: func(cmd *cobra.Command, args []string) {
			a.exitOnError(a.generate(cmd))
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show pattern counts and keyspace without writing masks",
		Run: func(cmd *cobra.Command, args []string) {
			a.exitOnError(a.stats(cmd))
		},
	}

	rootCmd.AddCommand(interactiveCmd, statsCmd)
	return rootCmd
}

func (a *app) exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) generate(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	toStdout := cfg.Output == "-"

	// Masks on stdout push the console report to stderr.
	console := a.stdout
	if toStdout {
		console = a.stderr
	}

	fmt.Fprintf(console, "\n[*] Generating all C/V combinations for core word length %d...\n", cfg.Length)
	fmt.Fprintf(console, "[*] Applying linguistic filters (Max consecutive C: %d, Max consecutive V: %d)...\n",
		cfg.MaxConsonants-1, cfg.MaxVowels-1)

	g := generator.New(cfg)
	if cfg.Length >= largeLength {
		a.logger.Warn("large enumeration", slog.Int("length", cfg.Length), slog.Uint64("patterns", g.Total()))
	}

	var bar *progressbar.ProgressBar
	if !toStdout && !noProgress && isTerminal(a.stderr) {
		bar = newProgressBar(a.stderr, g.Total())
		g.SetProgressCallback(func(p generator.Progress) {
			_ = bar.Set64(clampInt64(p.Processed))
		})
	}

	var result generator.Result
	if toStdout {
		result, err = g.Generate(a.stdout)
	} else {
		result, err = g.WriteFile(cfg.Output)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	a.logger.Debug("generation finished",
		slog.Uint64("enumerated", result.Enumerated),
		slog.Uint64("survived", result.Survived),
		slog.Duration("duration", result.Duration))

	fmt.Fprintf(console, "\n[+] Success! Reduced %d combinations down to %d optimal core word patterns.\n",
		result.Enumerated, result.Survived)
	fmt.Fprintf(console, "[+] Total keyspace: %s candidates (%s)\n", formatKeyspace(result.Keyspace), formatDuration(result.Duration))
	if toStdout {
		fmt.Fprintln(console)
		return nil
	}
	fmt.Fprintf(console, "[+] Saved ready-to-use Hashcat masks to: %s\n\n", cfg.Output)
	return nil
}

func (a *app) stats(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := generator.New(cfg).Generate(nil)
	if err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintln(w, "Core Word Mask Statistics")
	fmt.Fprintln(w, "=========================")
	fmt.Fprintf(w, "Length:      %d\n", cfg.Length)
	fmt.Fprintf(w, "Drop runs:   %d consonants, %d vowels\n", cfg.MaxConsonants, cfg.MaxVowels)
	fmt.Fprintf(w, "Consonants:  %s\n", cfg.Consonants)
	fmt.Fprintf(w, "Vowels:      %s\n", cfg.Vowels)
	fmt.Fprintf(w, "Mode:        %d) %s\n", int(cfg.Mode), cfg.Mode.Description())
	fmt.Fprintf(w, "Enumerated:  %d\n", result.Enumerated)
	fmt.Fprintf(w, "Surviving:   %d\n", result.Survived)
	fmt.Fprintf(w, "Keyspace:    %s\n", formatKeyspace(result.Keyspace))
	return nil
}

// loadConfig layers defaults, the config file, the environment, explicit
// flags and, when asked for, prompt answers. Prompts go to stderr so that
// masks written to stdout stay clean.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var in config.Input

	if configFile != "" {
		fileIn, err := config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}
		a.logger.Debug("loaded config file", slog.String("path", configFile))
		in = in.Merge(fileIn)
	}

	envIn, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	in = in.Merge(envIn)
	in = in.Merge(flagInput(cmd))

	if interactive || cmd.Name() == "interactive" {
		in = prompt.Run(a.stdin, a.stderr, in)
	}

	cfg := config.Resolve(in, a.logger)
	a.logger.Debug("resolved config",
		slog.Int("length", cfg.Length),
		slog.Int("max_consonants", cfg.MaxConsonants),
		slog.Int("max_vowels", cfg.MaxVowels),
		slog.String("mode", cfg.Mode.String()),
		slog.String("output", cfg.Output))
	return cfg, nil
}

// flagInput returns only the flags set on the command line, so that
// flag defaults do not shadow file or environment values.
func flagInput(cmd *cobra.Command) config.Input {
	var in config.Input
	fs := cmd.Flags()

	if fs.Changed("length") {
		in.Length = strconv.Itoa(length)
	}
	if fs.Changed("max-consonants") {
		in.MaxConsonants = strconv.Itoa(maxConsonants)
	}
	if fs.Changed("max-vowels") {
		in.MaxVowels = strconv.Itoa(maxVowels)
	}
	if fs.Changed("consonants") {
		in.Consonants = consonants
	}
	if fs.Changed("vowels") {
		in.Vowels = vowels
	}
	if fs.Changed("mode") {
		in.Mode = mode
	}
	if fs.Changed("output") {
		in.Output = output
	}
	return in
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newProgressBar(w io.Writer, total uint64) *progressbar.ProgressBar {
	limit := int64(-1)
	if total <= math.MaxInt64 {
		limit = int64(total)
	}
	return progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("[*] Writing masks"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("patterns"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func clampInt64(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

func formatKeyspace(n uint64) string {
	if n == math.MaxUint64 {
		return ">= " + strconv.FormatUint(n, 10)
	}
	return strconv.FormatUint(n, 10)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
