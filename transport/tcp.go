package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/internal/timer"
)

var _ Transport = new(TCP)

var ErrNotBound = errors.New("transport: listener is not bound")

type TCP struct {
	l    *net.TCPListener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	// SO_REUSEADDR is set by the runtime on every listening socket
	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return err
}

// Addr returns the address the listener is actually bound to, which differs from the
// requested one when port 0 was asked for.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Listen runs the accept loop. Every connection is handed to cb in a new goroutine, and
// the loop proceeds to the next Accept immediately. Any accept error except for the
// periodic interrupt is returned as is, meaning the listener is unusable.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	if t.l == nil {
		return ErrNotBound
	}

	for !t.stop.Load() {
		err := t.l.SetDeadline(timer.Deadline(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() {
				// the listener was closed deliberately
				return nil
			}

			return err
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()
			cb(conn)
		}(conn)
	}

	return nil
}

// Stop makes the accept loop exit. Already accepted connections are left intact.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

// Close closes the listener, which also interrupts the pending Accept.
func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}

// Wait blocks until every spawned connection handler has returned.
func (t *TCP) Wait() {
	t.wg.Wait()
}
