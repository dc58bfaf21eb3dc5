package varnish

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSecretRequired       = errors.New("The server wants authentication but no secret is configured")
	ErrAuthenticationFailed = errors.New("The server rejected the authentication digest")
	ErrUnexpectedBanner     = errors.New("The server opened with an unexpected banner status")
	ErrMissingHost          = errors.New("Cannot derive a ban expression from a URL without a host")
	ErrDuplicateServer      = errors.New("A server with this name is already in the pool")
	ErrPingResponse         = errors.New("The server sent a malformed ping response")
)

// CommandError is returned when a command reached the server but came
// back with a status the caller did not expect. It keeps the whole
// exchange for diagnostics.
type CommandError struct {
	Command string
	Status  int
	Body    string
}

func (e *CommandError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("Command %q failed with status %d", e.Command, e.Status)
	}

	return fmt.Sprintf("Command %q failed with status %d: %s", e.Command, e.Status, body)
}
