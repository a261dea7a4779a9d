package dataset

import (
	"os"

	"github.com/agentstation/betaox/pkg/errors"
)

// RetryFunc is asked for a replacement path after path failed to open.
// Returning false gives up.
type RetryFunc func(kind Kind, path string, err error) (string, bool)

// Opener opens dataset files. Without a Retry function, the first failure
// is returned.
type Opener struct {
	Retry RetryFunc

	// MaxAttempts bounds the number of paths tried. Zero means unbounded.
	MaxAttempts int
}

// Opened is a successfully opened dataset file.
type Opened struct {
	Kind Kind
	Path string
	File *os.File
}

// Close closes the underlying file.
func (o *Opened) Close() error {
	return o.File.Close()
}

// Open opens path, asking Retry for replacements until one opens.
func (o *Opener) Open(kind Kind, path string) (*Opened, error) {
	for attempt := 1; ; attempt++ {
		f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
		if err == nil {
			return &Opened{Kind: kind, Path: path, File: f}, nil
		}

		ioErr := errors.NewIOError("open", path, err)
		if o == nil || o.Retry == nil || (o.MaxAttempts > 0 && attempt >= o.MaxAttempts) {
			return nil, ioErr
		}
		next, ok := o.Retry(kind, path, ioErr)
		if !ok {
			return nil, ioErr
		}
		path = next
	}
}
