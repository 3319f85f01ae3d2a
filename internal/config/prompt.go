package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads missing settings from the terminal. Prompts go to
// stderr so they never mix with piped output.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Ask prompts until a non-empty line is entered.
func (p *TerminalPrompter) Ask(prompt string) (string, error) {
	reader := bufio.NewReader(p.In)
	for {
		fmt.Fprintf(p.Out, "%s: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if value := strings.TrimSpace(line); value != "" {
			return value, nil
		}
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
	}
}

// AskSecret prompts without echoing when stdin is a terminal, and falls
// back to a plain read otherwise (tests, pipes).
func (p *TerminalPrompter) AskSecret(prompt string) (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return p.Ask(prompt)
	}
	for {
		fmt.Fprintf(p.Out, "%s: ", prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		if value := strings.TrimSpace(string(raw)); value != "" {
			return value, nil
		}
	}
}
