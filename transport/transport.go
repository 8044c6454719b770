package transport

import (
	"net"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
)

// Transport is the listening side of the server. Listen blocks and spawns cb for every
// accepted connection in its own goroutine until either Stop is called or Accept fails.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Addr() net.Addr
	Stop()
	Close()
	Wait()
}
