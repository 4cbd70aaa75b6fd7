// Package prompt collects the short descriptive label that names a
// reproduction archive.
package prompt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// DefaultLabel names archives produced without an interactive terminal.
const DefaultLabel = "bug-report"

// Ask prompts for a short label on the terminal. When stdin is not a
// terminal (CI, piped input) it returns DefaultLabel so the run stays
// non-interactive. A file extension typed by the author is stripped.
func Ask(question string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return DefaultLabel, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          question,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return StripExtension(strings.TrimSpace(line)), nil
}

// StripExtension removes a trailing file extension from the label, e.g.
// "broken nav.zip" becomes "broken nav".
func StripExtension(label string) string {
	return strings.TrimSuffix(label, filepath.Ext(label))
}
