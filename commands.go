package varnish

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/all-ride/ride-lib-varnish/protocol"
)

const (
	childStatePrefix  = "Child in state "
	childStateRunning = "running"
)

// IsRunning reports whether the cache child process is running. Every
// failure, connection or command alike, reads as not running.
func (a *Admin) IsRunning() bool {
	body, err := a.Execute("status")
	if err != nil {
		a.log.Debug("Status check failed", zap.Error(err))
		return false
	}

	if !strings.HasPrefix(body, childStatePrefix) {
		return false
	}

	return strings.TrimSpace(body[len(childStatePrefix):]) == childStateRunning
}

// Start boots the cache child process. A child that is already running
// is left alone and Start reports false; otherwise the start command
// is issued and Start reports true.
func (a *Admin) Start() (bool, error) {
	if a.IsRunning() {
		return false, nil
	}

	if _, err := a.Execute("start"); err != nil {
		return false, err
	}

	return true, nil
}

// Stop shuts the cache child process down, the mirror image of Start:
// a child that is not running is left alone and Stop reports false.
func (a *Admin) Stop() (bool, error) {
	if !a.IsRunning() {
		return false, nil
	}

	if _, err := a.Execute("stop"); err != nil {
		return false, err
	}

	return true, nil
}

// Ping checks that the server is alive and returns its clock as a unix
// timestamp.
func (a *Admin) Ping() (int64, error) {
	body, err := a.Execute("ping")
	if err != nil {
		return 0, err
	}

	// The body reads "PONG <timestamp> <version>".
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrPingResponse, strings.TrimSpace(body))
	}

	ts, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a timestamp", ErrPingResponse, fields[1])
	}

	return ts, nil
}

// SetParameter sets a runtime parameter on the server.
func (a *Admin) SetParameter(name, value string) error {
	_, err := a.Execute("param.set " + name + " " + value)
	return err
}

// GetPanic returns the last panic the cache child process recorded.
// The boolean is false when there is none.
func (a *Admin) GetPanic() (string, bool, error) {
	status, body, err := a.ExecuteStatus("panic.show")
	if err != nil {
		return "", false, err
	}

	switch status {
	case protocol.StatusOK:
		return body, true, nil

	case protocol.StatusNoPanic:
		return "", false, nil

	default:
		return "", false, &CommandError{Command: "panic.show", Status: status, Body: body}
	}
}

// ClearPanic discards the recorded panic.
func (a *Admin) ClearPanic() error {
	_, err := a.Execute("panic.clear")
	return err
}

// Ban installs a ban expression. Cached objects matching it are
// invalidated and fetched anew on their next request.
func (a *Admin) Ban(expression string) error {
	_, err := a.Execute("ban " + expression)
	return err
}

// BanURL bans a single URL. With recursive set everything underneath
// the URL's path is invalidated as well.
func (a *Admin) BanURL(url string, recursive bool) error {
	expression, err := BanExpression(url, recursive)
	if err != nil {
		return err
	}

	return a.Ban(expression)
}

// BanURLs bans every URL in the list, stopping at the first failure.
func (a *Admin) BanURLs(urls []string, recursive bool) error {
	for _, url := range urls {
		if err := a.BanURL(url, recursive); err != nil {
			return err
		}
	}

	return nil
}
