// Package prompt asks the operator for input on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/betaox/internal/dataset"
)

// Result represents the operator's response to a prompt.
type Result int

const (
	// ResultRetry indicates the operator supplied a value to retry with.
	ResultRetry Result = iota
	// ResultCancel indicates the operator wants to abort the run.
	ResultCancel
)

// Prompter reads answers from one input stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter reading from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Path asks for a replacement for a dataset file that failed to open.
// An empty answer, "cancel", or end of input cancels.
func (p *Prompter) Path(kind dataset.Kind, path string, cause error) (string, Result) {
	fmt.Fprintf(p.out, "\n⚠️  Unable to open %s file %q\n", kind.Description(), path)
	if cause != nil {
		fmt.Fprintf(p.out, "   %v\n", cause)
	}
	fmt.Fprintf(p.out, "   Expected columns: %s\n", strings.Join(kind.Columns(), " "))
	fmt.Fprintf(p.out, "Please re-enter the %s file name (empty to cancel): ", kind.Description())

	response, err := p.in.ReadString('\n')
	response = strings.TrimSpace(response)
	if err != nil && response == "" {
		return "", ResultCancel
	}

	switch strings.ToLower(response) {
	case "", "c", "cancel", "q", "quit":
		return "", ResultCancel
	}
	return response, ResultRetry
}

// Retry adapts Path to a dataset.RetryFunc.
func (p *Prompter) Retry() dataset.RetryFunc {
	return func(kind dataset.Kind, path string, err error) (string, bool) {
		next, result := p.Path(kind, path, err)
		return next, result == ResultRetry
	}
}

// Tolerance asks for the percent-difference tolerance. An empty answer
// keeps current.
func (p *Prompter) Tolerance(current float64) (float64, error) {
	for {
		fmt.Fprintf(p.out, "Enter the percent-difference tolerance for temporal pairing [%g]: ", current)
		response, err := p.in.ReadString('\n')
		response = strings.TrimSpace(response)
		if response == "" {
			if err != nil && err != io.EOF {
				return 0, err
			}
			return current, nil
		}

		if v, parseErr := strconv.ParseFloat(response, 64); parseErr == nil && v > 0 && !math.IsInf(v, 0) {
			return v, nil
		}
		fmt.Fprintf(p.out, "Invalid tolerance %q: must be a finite positive number\n", response)
		if err != nil {
			return 0, err
		}
	}
}
