package serve

import (
	"bytes"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/http/status"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/accesslog"
	"github.com/TomasGlgg/SimpleHTTPserver/transport/dummy"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T) *config.Config {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("Hello, world!"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>root</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "site"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "site", "index.html"), []byte("<h1>site</h1>"), 0o644))

	cfg := config.Default()
	cfg.Static.Root = root
	return cfg
}

func handle(cfg *config.Config, request ...string) (string, accesslog.Entry, *dummy.Client) {
	pieces := make([][]byte, len(request))
	for i, piece := range request {
		pieces[i] = []byte(piece)
	}

	client := dummy.NewMockClient(pieces...)
	entry := Handle(cfg, client)
	return client.Written(), entry, client
}

func TestHandle(t *testing.T) {
	cfg := newConfig(t)

	t.Run("regular file", func(t *testing.T) {
		resp, entry, _ := handle(cfg, "GET /hello.txt HTTP/1.1\r\nHost: localhost\r\n\r\n")
		require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\nHello, world!", resp)
		require.Equal(t, status.OK, entry.Status)
		require.Equal(t, "hello.txt", entry.Path)
		require.Equal(t, int64(13), entry.Size)
		require.Empty(t, entry.Error)
	})

	t.Run("root", func(t *testing.T) {
		resp, _, _ := handle(cfg, "GET / HTTP/1.1\r\n")
		require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\n<h1>root</h1>", resp)
	})

	t.Run("directory", func(t *testing.T) {
		for _, request := range []string{"GET /site HTTP/1.1\n", "GET /site/ HTTP/1.1\n"} {
			resp, _, _ := handle(cfg, request)
			require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\n<h1>site</h1>", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp, entry, _ := handle(cfg, "GET /missing.txt HTTP/1.1\n")
		require.Equal(t, "HTTP/1.1 404 Not Found\nContent-Length: 22\n\n<h1>404 Not found</h1>", resp)
		require.Equal(t, status.NotFound, entry.Status)
	})

	t.Run("traversal", func(t *testing.T) {
		sub := *cfg
		sub.Static.Root = filepath.Join(cfg.Static.Root, "site")
		resp, entry, _ := handle(&sub, "GET /../hello.txt HTTP/1.1\n")
		require.Equal(t, "HTTP/1.1 404 Not Found\nContent-Length: 22\n\n<h1>404 Not found</h1>", resp)
		require.Equal(t, status.NotFound, entry.Status)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, request := range []string{
			"GET /hello.txt\r\n",
			"POST /hello.txt HTTP/1.1\r\n",
			"GET //hello.txt HTTP/1.1\r\n",
			"",
		} {
			resp, entry, _ := handle(cfg, request)
			require.Empty(t, resp, request)
			require.Equal(t, status.CloseConnection, entry.Status)
			require.NotEmpty(t, entry.Error)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		for _, request := range []string{"", "GET /hello.txt"} {
			client := dummy.NewMockClient([]byte(request)).FailWith(os.ErrDeadlineExceeded)
			entry := Handle(cfg, client)
			require.Empty(t, client.Written(), request)
			require.Equal(t, accesslog.EventReadFailure, entry.Event)
			require.Equal(t, status.CloseConnection, entry.Status)
			require.Equal(t, os.ErrDeadlineExceeded.Error(), entry.Error)
		}
	})

	t.Run("malformed is not a read failure", func(t *testing.T) {
		_, entry, _ := handle(cfg, "POST /hello.txt HTTP/1.1\r\n")
		require.Equal(t, accesslog.EventRequest, entry.Event)
	})

	t.Run("split request", func(t *testing.T) {
		resp, _, _ := handle(cfg, "GET /hel", "lo.txt HTT", "P/1.1\r\n")
		require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\nHello, world!", resp)
	})

	t.Run("peer closed without line feed", func(t *testing.T) {
		resp, _, _ := handle(cfg, "GET /hello.txt HTTP/1.1")
		require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\nHello, world!", resp)
	})

	t.Run("oversized request line", func(t *testing.T) {
		small := *cfg
		small.NET.ReadBufferSize = 32

		resp, entry, _ := handle(&small, "GET /"+strings.Repeat("a", 64)+" HTTP/1.1\n")
		require.Empty(t, resp)
		require.Contains(t, entry.Error, "header block exceeds the read buffer")

		resp, _, _ = handle(&small, "GET /hello.txt HTTP/1.1\nHost: "+strings.Repeat("a", 64))
		require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\nHello, world!", resp)
	})

	t.Run("unopenable file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can open anything")
		}

		path := filepath.Join(cfg.Static.Root, "secret.txt")
		require.NoError(t, os.WriteFile(path, []byte("secret"), 0o000))

		resp, entry, _ := handle(cfg, "GET /secret.txt HTTP/1.1\n")
		require.Equal(t,
			"HTTP/1.1 500 Internal server error\nContent-Length: 34\n\n<h1>500 Internal server error</h1>",
			resp,
		)
		require.Equal(t, status.InternalServerError, entry.Status)
		require.NotEmpty(t, entry.Error)
	})

	t.Run("idempotence", func(t *testing.T) {
		first, _, _ := handle(cfg, "GET /hello.txt HTTP/1.1\n")
		second, _, _ := handle(cfg, "GET /hello.txt HTTP/1.1\n")
		require.Equal(t, first, second)
	})

	t.Run("client is left open", func(t *testing.T) {
		_, _, client := handle(cfg, "GET /hello.txt HTTP/1.1\n")
		require.False(t, client.Closed())
	})
}

func TestHTTP1(t *testing.T) {
	cfg := newConfig(t)
	out := new(bytes.Buffer)
	logger, err := accesslog.New(log.New(out, "", 0), config.LogJSON)
	require.NoError(t, err)

	server, peer := net.Pipe()
	done := make(chan struct{})
	go func() {
		HTTP1(cfg, server, logger)
		close(done)
	}()

	_, err = peer.Write([]byte("GET /hello.txt HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	resp, err := io.ReadAll(peer)
	require.NoError(t, err)
	require.Equal(t, "HTTP/1.1 200 OK\nContent-Length: 13\n\nHello, world!", string(resp))
	<-done

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"event":"accept"`)
	require.Contains(t, lines[1], `"event":"request"`)
	require.Contains(t, lines[1], `"status":200`)
}
