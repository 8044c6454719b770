package http1

import (
	"bytes"
	"errors"
	"io"

	"github.com/TomasGlgg/SimpleHTTPserver/transport"
	"github.com/indigo-web/utils/buffer"
)

// ErrHeaderBlockTooLarge is returned when the header window is filled up before a line
// terminator was met. The block returned along with it holds everything that fit.
var ErrHeaderBlockTooLarge = errors.New("header block exceeds the read buffer")

// HeaderReader accumulates bytes from a client until the first line is complete.
type HeaderReader struct {
	client   transport.Client
	buff     *buffer.Buffer[byte]
	capacity int
}

func NewHeaderReader(client transport.Client, capacity int) *HeaderReader {
	return &HeaderReader{
		client:   client,
		buff:     buffer.NewBuffer[byte](capacity, capacity),
		capacity: capacity,
	}
}

// Read blocks until either a line feed arrives, the window is full or the peer stops
// sending. A peer closing the connection is not an error: whatever was accumulated is
// returned, and it's up to the parser to decide whether it makes any sense.
func (r *HeaderReader) Read() ([]byte, error) {
	r.buff.Clear()
	var total int

	for {
		data, err := r.client.Read()
		if len(data) > 0 {
			truncated := false

			if !r.buff.Append(data...) {
				// keep what fits, the line might be complete already
				data, truncated = data[:r.capacity-total], true
				r.buff.Append(data...)
			}

			total += len(data)

			switch {
			case bytes.IndexByte(data, '\n') != -1:
				return r.buff.Finish(), nil
			case truncated || total == r.capacity:
				return r.buff.Finish(), ErrHeaderBlockTooLarge
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}

			return r.buff.Finish(), err
		}
	}
}
