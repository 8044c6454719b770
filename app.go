package simplehttpserver

import (
	"errors"
	"log"
	"net"
	"os"
	"runtime/debug"
	"sync"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/http/serve"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/accesslog"
	"github.com/TomasGlgg/SimpleHTTPserver/transport"
)

var ErrAlreadyRunning = errors.New("application is already running")

// App is a static file server bound to a single address.
type App struct {
	addr      string
	cfg       *config.Config
	logger    *accesslog.Logger
	hooks     hooks
	transport transport.Transport
	handler   func(*config.Config, net.Conn, *accesslog.Logger)
	mu        sync.Mutex
	running   bool
	stopOnce  sync.Once
}

// New returns a new App instance. Files are served from the process's working directory
// unless the config says otherwise.
func New(addr string) *App {
	return &App{
		addr:      addr,
		cfg:       config.Default(),
		transport: transport.NewTCP(),
		handler:   serve.HTTP1,
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default logger, which writes text entries to stdout.
func (a *App) Logger(logger *accesslog.Logger) *App {
	a.logger = logger
	return a
}

// NotifyOnStart calls the callback as soon as the listener is bound. Connections may be
// already dialed at that moment, as they'll be queued by the kernel.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback when the listener is closed and every connection is
// served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the address the app listens on, or nil if it doesn't yet.
func (a *App) Addr() net.Addr {
	return a.transport.Addr()
}

// Serve binds the listener and serves until Stop is called, which results in nil error,
// or until Accept fails, in which case the error is returned. Both ways, connections in
// flight are waited for before returning.
func (a *App) Serve() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.mu.Unlock()

	if err := a.start(); err != nil {
		// nothing was started, so the app may be served again
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()

		return err
	}

	a.logger.Printf("Listener started on %s", a.transport.Addr())
	callIfNotNil(a.hooks.OnStart)

	err := a.transport.Listen(a.cfg.NET, a.onConn)
	a.stop()
	callIfNotNil(a.hooks.OnStop)

	return err
}

func (a *App) start() error {
	if a.logger == nil {
		logger, err := accesslog.New(log.New(os.Stdout, "", log.LstdFlags), a.cfg.Log.Format)
		if err != nil {
			return err
		}

		a.logger = logger
	}

	return a.transport.Bind(a.addr)
}

// Stop stops accepting new connections and returns immediately. Serve returns as soon
// as the connections in flight are done.
func (a *App) Stop() {
	a.transport.Stop()
	a.transport.Close()
}

// GracefulStop is an alias to Stop. Connections are never kept alive, so there's nothing
// to interrupt: every accepted one is served to the end either way.
func (a *App) GracefulStop() {
	a.Stop()
}

func (a *App) stop() {
	a.stopOnce.Do(func() {
		a.transport.Stop()
		a.transport.Close()
		a.transport.Wait()
	})
}

func (a *App) onConn(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			_ = conn.Close()
			a.logger.Printf("panic while serving %s: %v\n%s", conn.RemoteAddr(), r, debug.Stack())
		}
	}()

	a.handler(a.cfg, conn, a.logger)
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
