package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// Confirm writes question followed by " [y/N] " and reads one line of input.
// An empty answer or EOF declines.
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	_, _ = fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

// ConfirmOverwrite asks whether the file at path may be replaced.
// It declines without prompting when stdin is not a terminal.
func ConfirmOverwrite(writer io.Writer, reader io.Reader, path string) PromptResult {
	if !isTerminal(os.Stdin) {
		return PromptResult{Accepted: false}
	}
	return Confirm(writer, reader, fmt.Sprintf("%s already exists. Overwrite it?", path))
}
