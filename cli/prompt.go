// Package cli holds the line-oriented console plumbing: prompting, line
// reading and the ad hoc numeric parsing the menus rely on.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidInput marks an answer that failed to parse. Callers report it
// and abandon the current operation rather than treating it as fatal.
var ErrInvalidInput = errors.New("invalid input")

// Prompter reads free-text answers from a line-oriented input stream and
// echoes prompts to an output stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next input line with surrounding
// whitespace trimmed.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadInt reads one line and parses it as an integer. A malformed answer is
// an error; the caller abandons the current operation.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", ErrInvalidInput, line)
	}
	return n, nil
}

// ReadFloat reads one line and parses it as a decimal.
func (p *Prompter) ReadFloat(prompt string) (float64, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a decimal: %q", ErrInvalidInput, line)
	}
	return f, nil
}

// ReadChoice re-prompts until the answer parses as an integer. Only a read
// failure on the underlying stream ends the loop.
func (p *Prompter) ReadChoice() (int, error) {
	for {
		line, err := p.ReadLine("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "Your input is invalid!")
			continue
		}
		return n, nil
	}
}
