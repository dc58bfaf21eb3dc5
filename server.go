package varnish

// Server is the capability shared by a single endpoint and a pool of
// them: child process management plus cache invalidation. Code that
// only needs these operations can hold a Server and stay oblivious to
// whether one machine or a whole farm is behind it.
type Server interface {
	// IsRunning reports whether the cache child process is running.
	// Any failure to find out reads as false.
	IsRunning() bool

	// Start boots the cache child process, reporting whether a start
	// was actually issued. Starting a running child is a no-op that
	// reports false.
	Start() (bool, error)

	// Stop shuts the cache child process down, reporting whether a
	// stop was actually issued.
	Stop() (bool, error)

	// Ban installs a ban expression, invalidating every cached object
	// it matches.
	Ban(expression string) error

	// BanURL bans one URL, optionally everything underneath its path
	// too.
	BanURL(url string, recursive bool) error

	// BanURLs bans a list of URLs, stopping at the first failure.
	BanURLs(urls []string, recursive bool) error
}

// Quitter is implemented by servers whose sessions can be shut down
// cleanly, like Admin.
type Quitter interface {
	Quit() error
}

var _ Server = (*Admin)(nil)
var _ Server = (*Pool)(nil)

var _ Quitter = (*Admin)(nil)
