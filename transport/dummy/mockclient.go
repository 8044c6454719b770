package dummy

import (
	"io"
	"net"

	"github.com/TomasGlgg/SimpleHTTPserver/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with one by one, and io.EOF after them,
// unless set to loop. It also tracks all the written data, making it thereby a universal
// mock suitable for most of the tests.
type Client struct {
	closed  bool
	loop    bool
	pointer int
	err     error
	written []byte
	data    [][]byte
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
		err:  io.EOF,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, c.err
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

// Conn returns nil, so writers fall back to Write.
func (*Client) Conn() net.Conn {
	return nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4242}
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

func (c *Client) Closed() bool {
	return c.closed
}

// LoopReads makes the client start over instead of returning an error once the data
// is exhausted.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailWith replaces io.EOF returned after the data is exhausted.
func (c *Client) FailWith(err error) *Client {
	c.err = err
	return c
}

func (c *Client) Written() string {
	return string(c.written)
}
