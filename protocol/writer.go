package protocol

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrEmptyCommand    = errors.New("Refusing to send an empty command")
	ErrIncompleteWrite = errors.New("Short write while sending a command")
)

// WriteCommand sends command as a single request line, appending the
// terminating '\n'.
func WriteCommand(w io.Writer, command string) error {
	if command == "" {
		return ErrEmptyCommand
	}

	b := append([]byte(command), '\n')

	n, err := w.Write(b)
	if err != nil {
		return fmt.Errorf("Failed to send command: %w", err)
	}
	if n < len(b) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrIncompleteWrite, n, len(b))
	}

	return nil
}
