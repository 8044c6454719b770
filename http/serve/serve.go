package serve

import (
	"errors"
	"net"
	"os"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/http/status"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/accesslog"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/construct"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/protocol/http1"
	"github.com/TomasGlgg/SimpleHTTPserver/transport"
	"github.com/dchest/uniuri"
)

// connIDLength is long enough to tell apart connections within a log file.
const connIDLength = 8

// HTTP1 handles a single request on the connection and closes it. Nothing is shared with
// other connections except for the read-only config.
func HTTP1(cfg *config.Config, conn net.Conn, logger *accesslog.Logger) {
	id := uniuri.NewLen(connIDLength)
	logger.Accepted(id, conn.RemoteAddr())

	client := construct.Client(cfg.NET, conn)
	defer func() {
		_ = client.Close()
	}()

	entry := Handle(cfg, client)
	entry.Conn = id
	logger.Log(entry)
}

// Handle runs the read, parse, resolve and respond steps over the client. The client is
// left open. The returned entry describes the outcome.
func Handle(cfg *config.Config, client transport.Client) accesslog.Entry {
	entry := accesslog.Entry{
		Event:  accesslog.EventRequest,
		Remote: remote(client),
	}

	block, err := construct.HeaderReader(cfg.NET, client).Read()
	if err != nil && !errors.Is(err, http1.ErrHeaderBlockTooLarge) {
		// the peer is gone or too slow, so there's nobody to respond to
		entry.Event = accesslog.EventReadFailure
		entry.Error = err.Error()
		return entry
	}

	// a truncated block still gets its chance, the request line may fit entirely
	path, perr := http1.ParseRequestPath(block, cfg.Static.Index)
	if perr != nil {
		entry.Error = errors.Join(perr, err).Error()
		return entry
	}

	entry.Path = path
	serializer := http1.NewSerializer(client)

	file, err := construct.Resolver(cfg.Static).Resolve(path)
	if err != nil {
		entry.Status = status.NotFound
		if werr := serializer.WriteError(status.ErrNotFound); werr != nil {
			entry.Error = werr.Error()
		}

		return entry
	}

	fd, err := os.Open(file.Path)
	if err != nil {
		entry.Status = status.InternalServerError
		entry.Error = err.Error()
		if werr := serializer.WriteError(status.ErrInternalServerError); werr != nil {
			entry.Error = errors.Join(err, werr).Error()
		}

		return entry
	}

	defer func() {
		_ = fd.Close()
	}()

	entry.Status = status.OK
	entry.Size = file.Size

	if err = serializer.WriteHeaders(status.OK, file.Size); err != nil {
		entry.Error = err.Error()
		return entry
	}

	if _, err = serializer.WriteFile(fd, file.Size); err != nil {
		// the headers are already out, all that's left is to tell about it
		entry.Error = err.Error()
	}

	return entry
}

func remote(client transport.Client) string {
	if addr := client.Remote(); addr != nil {
		return addr.String()
	}

	return ""
}
