package construct

import (
	"net"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/protocol/http1"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/static"
	"github.com/TomasGlgg/SimpleHTTPserver/transport"
)

func Client(cfg config.NET, conn net.Conn) transport.Client {
	readBuff := make([]byte, cfg.ReadBufferSize)

	return transport.NewClient(conn, cfg.ReadTimeout, readBuff)
}

func HeaderReader(cfg config.NET, client transport.Client) *http1.HeaderReader {
	return http1.NewHeaderReader(client, cfg.ReadBufferSize)
}

func Resolver(cfg config.Static) static.Resolver {
	return static.NewResolver(cfg.Root, cfg.Index)
}
