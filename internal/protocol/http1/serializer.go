package http1

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/TomasGlgg/SimpleHTTPserver/http/status"
	"github.com/TomasGlgg/SimpleHTTPserver/transport"
)

// headersBuffSize fits the longest status line and a Content-Length of any int64 value
// many times over.
const headersBuffSize = 256

var ErrUnknownStatus = errors.New("status code has no reason phrase")

const (
	protocol      = "HTTP/1.1 "
	contentLength = "Content-Length: "
	// lines are terminated by a bare LF, exactly as the server always did
	lf = '\n'
)

type Serializer struct {
	client transport.Client
	buff   []byte
}

func NewSerializer(client transport.Client) *Serializer {
	return &Serializer{
		client: client,
		buff:   make([]byte, 0, headersBuffSize),
	}
}

// WriteHeaders renders and flushes the status line, Content-Length and the empty line
// closing the headers block.
func (s *Serializer) WriteHeaders(code status.Code, length int64) error {
	text := status.Text(code)
	if len(text) == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, code)
	}

	s.buff = append(s.buff[:0], protocol...)
	s.buff = append(s.buff, status.StringCode(code)...)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, string(text)...)
	s.buff = append(s.buff, lf)
	s.buff = append(s.buff, contentLength...)
	s.buff = strconv.AppendInt(s.buff, length, 10)
	s.buff = append(s.buff, lf, lf)

	_, err := s.client.Write(s.buff)
	return err
}

// WriteFile transfers exactly size bytes of the file. When the client exposes a net.Conn,
// the copy goes straight into it, so a TCP connection will engage sendfile(2) on Linux.
// A file shorter than announced results in io.ErrUnexpectedEOF, though the headers are
// already sent by that time and nothing can be done about it.
func (s *Serializer) WriteFile(file io.Reader, size int64) (int64, error) {
	var dst io.Writer = s.client
	if conn := s.client.Conn(); conn != nil {
		dst = conn
	}

	n, err := io.Copy(dst, &io.LimitedReader{R: file, N: size})
	if err == nil && n < size {
		err = io.ErrUnexpectedEOF
	}

	return n, err
}

// WriteError responds with the error's code and its canned body.
func (s *Serializer) WriteError(httpErr status.HTTPError) error {
	if err := s.WriteHeaders(httpErr.Code, int64(len(httpErr.Body))); err != nil {
		return err
	}

	_, err := io.WriteString(s.client, httpErr.Body)
	return err
}
