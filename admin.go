package varnish

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/all-ride/ride-lib-varnish/protocol"
)

const (
	// DefaultHost is where varnishd lives when nothing is configured.
	DefaultHost = "localhost"

	// DefaultPort is the conventional varnishd management port.
	DefaultPort = 6082

	// DefaultTimeout bounds implicit connects, and the reads of the
	// sessions they open, when no timeout is configured.
	DefaultTimeout = 5 * time.Second
)

// State of an Admin session.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}

	return "disconnected"
}

// Options configures an Admin.
type Options struct {
	// Host of the management interface. Defaults to DefaultHost.
	Host string

	// Port of the management interface. Defaults to DefaultPort.
	Port int

	// Secret shared with varnishd (-S). Leave empty for instances that
	// do not require authentication. Secret files conventionally end
	// in a newline which is part of the secret, so read them verbatim.
	Secret string

	// Timeout for implicit connects, and the read timeout of the
	// sessions they open. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Log receives a debug event for every exchange. nil disables
	// them.
	Log *zap.Logger
}

// Admin is a session with the management port of one varnishd
// instance.
//
// A new Admin is disconnected. Commands connect on demand, and any I/O
// failure drops the session back to StateDisconnected so the next
// command starts over on a fresh socket. An Admin is not safe for
// concurrent use; the protocol is strictly one command at a time.
type Admin struct {
	host    string
	port    int
	secret  string
	timeout time.Duration

	state       State
	conn        net.Conn
	reader      *bufio.Reader
	readTimeout time.Duration

	log *zap.Logger
}

// NewAdmin builds a disconnected session from options.
func NewAdmin(options Options) *Admin {
	host := options.Host
	if host == "" {
		host = DefaultHost
	}

	port := options.Port
	if port == 0 {
		port = DefaultPort
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	a := &Admin{
		host:    host,
		port:    port,
		secret:  options.Secret,
		timeout: timeout,
		state:   StateDisconnected,
	}
	a.log = log.With(zap.String("server", a.Name()))

	return a
}

// Host returns the configured host.
func (a *Admin) Host() string {
	return a.host
}

// Port returns the configured management port.
func (a *Admin) Port() int {
	return a.port
}

// Name identifies this endpoint as "host:port". Pools conventionally
// use it as the registration key.
func (a *Admin) Name() string {
	return net.JoinHostPort(a.host, strconv.Itoa(a.port))
}

// State returns the connection state of the session.
func (a *Admin) State() State {
	return a.state
}

// Connect dials the management port, reads the banner and, when the
// server demands it, answers the authentication challenge. The timeout
// bounds the dial and becomes the read timeout of the session.
//
// Connecting an already connected session does nothing. Commands
// connect implicitly, so calling Connect is only needed to control the
// timeout or to fail early.
func (a *Admin) Connect(timeout time.Duration) error {
	if a.state == StateConnected {
		return nil
	}

	a.log.Debug("Connecting", zap.Duration("timeout", timeout))

	conn, err := net.DialTimeout("tcp", a.Name(), timeout)
	if err != nil {
		return fmt.Errorf("Failed to connect to %s: %w", a.Name(), err)
	}

	a.conn = conn
	a.reader = bufio.NewReader(conn)
	a.readTimeout = timeout
	a.state = StateConnected

	banner, err := a.read()
	if err != nil {
		a.Disconnect()
		return err
	}

	switch banner.Status {
	case protocol.StatusOK:
		a.log.Debug("Connected")
		return nil

	case protocol.StatusAuthRequired:
		if err := a.authenticate(banner.Body); err != nil {
			a.Disconnect()
			return err
		}

		a.log.Debug("Connected and authenticated")
		return nil

	default:
		a.Disconnect()
		return fmt.Errorf("%w: %d", ErrUnexpectedBanner, banner.Status)
	}
}

// authenticate answers the challenge that opens banner.
func (a *Admin) authenticate(banner []byte) error {
	if a.secret == "" {
		return ErrSecretRequired
	}

	if len(banner) < challengeSize {
		return fmt.Errorf("%w: the challenge is %d bytes, expected %d",
			ErrAuthenticationFailed, len(banner), challengeSize)
	}
	challenge := string(banner[:challengeSize])

	resp, err := a.roundTrip("auth " + authDigest(challenge, a.secret))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	if resp.Status != protocol.StatusOK {
		return fmt.Errorf("%w: status %d", ErrAuthenticationFailed, resp.Status)
	}

	return nil
}

// Disconnect closes the session socket. Disconnecting a disconnected
// session does nothing.
func (a *Admin) Disconnect() error {
	if a.state != StateConnected {
		return nil
	}

	a.state = StateDisconnected
	a.reader = nil

	err := a.conn.Close()
	a.conn = nil

	a.log.Debug("Disconnected")

	return err
}

// Quit ends the session politely: it sends quit, which the server
// acknowledges with status 500 before closing its side, and then
// disconnects. Failures of the exchange are swallowed; a disconnected
// session is the outcome either way. Quit on a disconnected session
// does nothing.
func (a *Admin) Quit() error {
	if a.state != StateConnected {
		return nil
	}

	if resp, err := a.roundTrip("quit"); err == nil && resp.Status != protocol.StatusClose {
		a.log.Debug("Unexpected quit acknowledgement", zap.Int("status", resp.Status))
	}

	return a.Disconnect()
}

// Execute runs a raw command and requires it to succeed. It returns
// the response body, or a *CommandError when the server answered with
// anything but status 200.
func (a *Admin) Execute(command string) (string, error) {
	resp, err := a.execute(command)
	if err != nil {
		return "", err
	}

	if resp.Status != protocol.StatusOK {
		return "", &CommandError{Command: command, Status: resp.Status, Body: resp.Text()}
	}

	return resp.Text(), nil
}

// ExecuteStatus runs a raw command without requiring any particular
// status, for callers that branch on the code themselves.
func (a *Admin) ExecuteStatus(command string) (int, string, error) {
	resp, err := a.execute(command)
	if err != nil {
		return 0, "", err
	}

	return resp.Status, resp.Text(), nil
}

// execute runs one command through the session, connecting first when
// needed. Any I/O failure disconnects the session before the error is
// returned.
func (a *Admin) execute(command string) (*protocol.Response, error) {
	if command == "" {
		return nil, protocol.ErrEmptyCommand
	}

	if a.state != StateConnected {
		if err := a.Connect(a.timeout); err != nil {
			return nil, err
		}
	}

	resp, err := a.roundTrip(command)
	if err != nil {
		a.Disconnect()
		return nil, err
	}

	return resp, nil
}

// roundTrip writes one command and reads its response frame on the
// live connection. The session must be connected.
func (a *Admin) roundTrip(command string) (*protocol.Response, error) {
	a.log.Debug("Sending command", zap.String("command", command))

	if err := protocol.WriteCommand(a.conn, command); err != nil {
		return nil, err
	}

	resp, err := a.read()
	if err != nil {
		return nil, err
	}

	a.log.Debug("Received response",
		zap.Int("status", resp.Status),
		zap.Int("length", len(resp.Body)))

	return resp, nil
}

// read reads one frame, arming the read deadline the session was
// connected with.
func (a *Admin) read() (*protocol.Response, error) {
	if err := a.conn.SetReadDeadline(time.Now().Add(a.readTimeout)); err != nil {
		return nil, err
	}

	return protocol.ReadResponse(a.reader)
}
