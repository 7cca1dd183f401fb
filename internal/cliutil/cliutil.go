// Package cliutil provides small helpers shared by the CLI commands.
package cliutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Confirm prompts until the operator answers yes/y or no/n, matched
// case-insensitively. EOF counts as no: a closed stdin must never commit.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	scanner := bufio.NewScanner(in)
	for {
		Writef(out, "%s (yes/no): ", prompt)
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		default:
			Writef(out, "Please answer 'yes' or 'no'.\n")
		}
	}
}
