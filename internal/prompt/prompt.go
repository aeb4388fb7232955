// Package prompt asks the operator for generator settings on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lth/maskgen/internal/config"
	"github.com/lth/maskgen/internal/mask"
)

// Run walks the operator through every setting. The value shown as default
// for each question is what base resolves to; a blank answer keeps it. The
// returned Input is base with the answers merged on top, so it still has to
// go through config.Resolve.
func Run(r io.Reader, w io.Writer, base config.Input) config.Input {
	scanner := bufio.NewScanner(r)
	ask := func(question string) string {
		fmt.Fprint(w, question)
		if scanner.Scan() {
			return strings.TrimSpace(scanner.Text())
		}
		return ""
	}

	cur := config.Resolve(base, nil)
	var answers config.Input

	fmt.Fprintln(w, "=== Core Word Hcmask Generator ===")

	answers.Length = ask(fmt.Sprintf("Enter core word length [Default: %d]: ", cur.Length))
	answers.MaxConsonants = ask(fmt.Sprintf("Drop patterns with this many consecutive CONSONANTS [Default: %d]: ", cur.MaxConsonants))
	answers.MaxVowels = ask(fmt.Sprintf("Drop patterns with this many consecutive VOWELS [Default: %d]: ", cur.MaxVowels))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Alphabet Customization ---")
	fmt.Fprintln(w, "Tip: Remove rare letters (q, x, z, j) to drastically speed up cracking time.")
	answers.Consonants = ask(fmt.Sprintf("Enter CONSONANTS to use [Default: %s]: ", cur.Consonants))
	answers.Vowels = ask(fmt.Sprintf("Enter VOWELS to use [Default: %s]: ", cur.Vowels))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Capitalization Modes ---")
	for _, m := range mask.Modes() {
		fmt.Fprintf(w, "%d) %s\n", int(m), m.Description())
	}
	answers.Mode = ask(fmt.Sprintf("Select casing mode (1-%d) [Default: %d]: ", len(mask.Modes()), int(cur.Mode)))

	// The default file name depends on the answers so far.
	merged := base.Merge(answers)
	cur = config.Resolve(merged, nil)

	fmt.Fprintln(w)
	answers.Output = ask(fmt.Sprintf("Enter output filename [Default: %s]: ", cur.Output))

	return base.Merge(answers)
}
