package varnish

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PoolOptions configures a Pool.
type PoolOptions struct {
	// IgnoreOnFail makes broadcasts carry on past failing members
	// instead of aborting at the first failure.
	IgnoreOnFail bool

	// Log receives a warning for every member failure a broadcast
	// swallows. nil disables them.
	Log *zap.Logger
}

// Pool is a named registry of servers that applies every Server
// operation to all of its members, in registration order.
//
// With IgnoreOnFail unset the first failing member aborts a broadcast
// and its error is returned; with it set the failure is logged, the
// remaining members are still visited and the broadcast succeeds.
// Either way a member visited before the failure keeps its new state,
// there is no rollback.
//
// A Pool implements Server itself, so pools nest. Unlike an Admin, the
// registry is safe for concurrent use; the member sessions are only as
// safe as the members themselves.
type Pool struct {
	mu           sync.Mutex
	servers      map[string]Server
	order        []string
	ignoreOnFail bool

	log *zap.Logger
}

// NewPool builds an empty pool from options.
func NewPool(options PoolOptions) *Pool {
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Pool{
		servers:      make(map[string]Server),
		ignoreOnFail: options.IgnoreOnFail,
		log:          log,
	}
}

// AddServer registers a server under a name, conventionally the
// "host:port" identity an Admin reports as Name. Registering a taken
// name fails and leaves the existing member alone.
func (p *Pool) AddServer(name string, server Server) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.servers[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateServer, name)
	}

	p.servers[name] = server
	p.order = append(p.order, name)

	return nil
}

// RemoveServer drops the named member, reporting whether it was
// registered at all.
func (p *Pool) RemoveServer(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.servers[name]; !taken {
		return false
	}

	delete(p.servers, name)
	for i, candidate := range p.order {
		if candidate == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}

	return true
}

// GetServer looks a member up by name.
func (p *Pool) GetServer(name string) (Server, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	server, ok := p.servers[name]
	return server, ok
}

// ServerNames returns the member names in registration order.
func (p *Pool) ServerNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(p.order))
	copy(names, p.order)

	return names
}

// Len returns the number of members.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.order)
}

// SetIgnoreOnFail switches the failure policy of later broadcasts.
func (p *Pool) SetIgnoreOnFail(ignore bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ignoreOnFail = ignore
}

// IgnoreOnFail reports the current failure policy.
func (p *Pool) IgnoreOnFail() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ignoreOnFail
}

// members snapshots the broadcast targets, so a broadcast is not
// affected by members added or removed while it runs.
func (p *Pool) members() ([]string, []Server, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(p.order))
	copy(names, p.order)

	servers := make([]Server, 0, len(p.order))
	for _, name := range p.order {
		servers = append(servers, p.servers[name])
	}

	return names, servers, p.ignoreOnFail
}

// IsRunning reports whether every member is running. An empty pool is
// not running. The first member that is not running settles it, later
// members are not asked.
func (p *Pool) IsRunning() bool {
	_, servers, _ := p.members()
	if len(servers) == 0 {
		return false
	}

	for _, server := range servers {
		if !server.IsRunning() {
			return false
		}
	}

	return true
}

// Start starts every member, reporting whether at least one of them
// actually transitioned.
func (p *Pool) Start() (bool, error) {
	return p.broadcastBool("start", Server.Start)
}

// Stop stops every member, reporting whether at least one of them
// actually transitioned.
func (p *Pool) Stop() (bool, error) {
	return p.broadcastBool("stop", Server.Stop)
}

// Ban broadcasts a ban expression to every member.
func (p *Pool) Ban(expression string) error {
	return p.broadcast("ban", func(s Server) error {
		return s.Ban(expression)
	})
}

// BanURL broadcasts a URL ban to every member.
func (p *Pool) BanURL(url string, recursive bool) error {
	return p.broadcast("ban.url", func(s Server) error {
		return s.BanURL(url, recursive)
	})
}

// BanURLs broadcasts a list of URL bans to every member.
func (p *Pool) BanURLs(urls []string, recursive bool) error {
	return p.broadcast("ban.urls", func(s Server) error {
		return s.BanURLs(urls, recursive)
	})
}

// Quit shuts down the session of every member that has one. Unlike
// the broadcasts it always visits all members and returns the
// collected failures.
func (p *Pool) Quit() (err error) {
	names, servers, _ := p.members()

	for i, server := range servers {
		quitter, ok := server.(Quitter)
		if !ok {
			continue
		}

		if qerr := quitter.Quit(); qerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", names[i], qerr))
		}
	}

	return err
}

func (p *Pool) broadcast(op string, call func(Server) error) error {
	names, servers, ignore := p.members()

	for i, server := range servers {
		if err := call(server); err != nil {
			if !ignore {
				return err
			}

			p.log.Warn("Ignoring failed member",
				zap.String("op", op),
				zap.String("server", names[i]),
				zap.Error(err))
		}
	}

	return nil
}

func (p *Pool) broadcastBool(op string, call func(Server) (bool, error)) (bool, error) {
	names, servers, ignore := p.members()

	changed := false
	for i, server := range servers {
		ok, err := call(server)
		if err != nil {
			if !ignore {
				return changed, err
			}

			p.log.Warn("Ignoring failed member",
				zap.String("op", op),
				zap.String("server", names[i]),
				zap.Error(err))
			continue
		}

		if ok {
			changed = true
		}
	}

	return changed, nil
}
