package varnish

// This package is a client for the management port of the Varnish
// cache server, the same interface varnishadm speaks.
//
// An Admin is a session with a single varnishd instance:
//
//   ```
//     admin := varnish.NewAdmin(varnish.Options{
//         Host:   "cache-01.internal",
//         Secret: secret,
//     })
//     defer admin.Quit()
//
//     if !admin.IsRunning() {
//         admin.Start()
//     }
//
//     admin.BanURL("http://example.com/news", true)
//   ```
//
// Sessions connect lazily: the first command dials, reads the banner
// and answers the authentication challenge when there is one. Any I/O
// failure drops the session back to disconnected, so the next command
// starts over on a fresh socket. An Admin is not safe for concurrent
// use; give every goroutine its own session, or serialise access.
//
// A Pool groups servers and broadcasts the shared Server operations to
// all of them, which is how a farm of caches is kept in sync:
//
//   ```
//     pool := varnish.NewPool(varnish.PoolOptions{IgnoreOnFail: true})
//     pool.AddServer(a.Name(), a)
//     pool.AddServer(b.Name(), b)
//
//     pool.BanURLs(urls, true)
//   ```
//
// A Pool implements Server itself, so pools nest.
