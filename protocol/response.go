package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"strconv"
)

// Status codes that carry a meaning beyond plain success or failure.
// Everything else is handed to the caller as-is.
const (
	StatusOK           = 200
	StatusAuthRequired = 107
	StatusNoPanic      = 300
	StatusClose        = 500
)

var (
	ErrNoStatusLine  = errors.New("Connection closed before a status line arrived")
	ErrReadTimeout   = errors.New("Timed out waiting for the server")
	ErrTruncatedBody = errors.New("Connection closed in the middle of a response body")

	// statusLine matches the first line of a response frame: a three
	// digit status code, a space and the body length in bytes.
	statusLine = regexp.MustCompile(`^(\d{3}) (\d+)`)
)

// Response is one frame from the server.
type Response struct {
	Status int
	Body   []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// ReadResponse reads the next response frame from r. Lines that do not
// look like a status line are skipped, which covers both the trailing
// newline the server emits after every body and any noise between
// frames.
//
// The same reader must be used for every frame on a connection, or
// bytes buffered past the current frame would be lost.
func ReadResponse(r *bufio.Reader) (*Response, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// A partial final line is not a frame, even if it happens
			// to look like a status line.
			return nil, readErr(err, ErrNoStatusLine)
		}

		m := statusLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		status, _ := strconv.Atoi(m[1])
		length, err := strconv.Atoi(m[2])
		if err != nil {
			// A length that does not fit in an int cannot be honoured,
			// treat the line as noise.
			continue
		}

		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, readErr(err, ErrTruncatedBody)
		}

		return &Response{Status: status, Body: body}, nil
	}
}

// readErr maps an I/O failure onto the package sentinels: timeouts
// become ErrReadTimeout, anything else wraps fallback.
func readErr(err error, fallback error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrReadTimeout, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
