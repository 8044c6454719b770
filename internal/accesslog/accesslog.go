package accesslog

import (
	"fmt"
	"io"
	"log"
	"net"
	"strconv"

	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/TomasGlgg/SimpleHTTPserver/http/status"
	"github.com/fatih/color"
	json "github.com/json-iterator/go"
)

const (
	EventAccept  = "accept"
	EventRequest = "request"
	// EventReadFailure is a connection whose request couldn't be read at all, e.g. the
	// peer went silent past the read timeout.
	EventReadFailure = "read_failure"
)

// Entry describes what happened to a single connection. Status is zero (that is,
// status.CloseConnection) for requests dropped without a response.
type Entry struct {
	Event  string      `json:"event"`
	Conn   string      `json:"conn"`
	Remote string      `json:"remote,omitempty"`
	Path   string      `json:"path,omitempty"`
	Status status.Code `json:"status,omitempty"`
	Size   int64       `json:"size,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type encoder func(buff []byte, e Entry) []byte

// Logger writes access entries and lifecycle messages into a log.Logger. It's safe for
// concurrent use as long as the log.Logger is.
type Logger struct {
	out    *log.Logger
	encode encoder
}

func New(out *log.Logger, format string) (*Logger, error) {
	var enc encoder

	switch format {
	case config.LogText, "":
		enc = encodeText
	case config.LogJSON:
		enc = encodeJSON
	default:
		return nil, fmt.Errorf("accesslog: unknown format %q", format)
	}

	return &Logger{out: out, encode: enc}, nil
}

// Discard returns a logger writing nowhere.
func Discard() *Logger {
	return &Logger{out: log.New(io.Discard, "", 0), encode: encodeText}
}

func (l *Logger) Accepted(conn string, remote net.Addr) {
	l.Log(Entry{
		Event:  EventAccept,
		Conn:   conn,
		Remote: addr(remote),
	})
}

func (l *Logger) Log(e Entry) {
	_ = l.out.Output(2, string(l.encode(nil, e)))
}

// Printf is used for messages not bound to any connection.
func (l *Logger) Printf(format string, v ...any) {
	_ = l.out.Output(2, fmt.Sprintf(format, v...))
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func encodeText(buff []byte, e Entry) []byte {
	buff = append(buff, '[')
	buff = append(buff, e.Conn...)
	buff = append(buff, "] "...)

	if e.Event == EventAccept {
		buff = append(buff, "Connection accepted"...)
		if len(e.Remote) > 0 {
			buff = append(buff, " from "...)
			buff = append(buff, e.Remote...)
		}

		return buff
	}

	if e.Event == EventReadFailure {
		buff = append(buff, "Read failed"...)
		return appendError(buff, e.Error)
	}

	if e.Status == status.CloseConnection {
		buff = append(buff, "Malformed request"...)
		return appendError(buff, e.Error)
	}

	buff = append(buff, "File: "...)
	buff = append(buff, e.Path...)
	buff = append(buff, " - "...)

	switch e.Status {
	case status.OK:
		buff = append(buff, green("OK")...)
		buff = append(buff, ", size: "...)
		buff = strconv.AppendInt(buff, e.Size, 10)
	case status.NotFound:
		buff = append(buff, yellow("not found")...)
	default:
		buff = append(buff, red(status.ErrInternalServerError.Message)...)
	}

	return appendError(buff, e.Error)
}

func appendError(buff []byte, err string) []byte {
	if len(err) == 0 {
		return buff
	}

	buff = append(buff, " ("...)
	buff = append(buff, red(err)...)
	return append(buff, ')')
}

func encodeJSON(buff []byte, e Entry) []byte {
	data, err := json.ConfigDefault.Marshal(e)
	if err != nil {
		// an Entry consists of plain fields only
		return append(buff, err.Error()...)
	}

	return append(buff, data...)
}

func addr(a net.Addr) string {
	if a == nil {
		return ""
	}

	return a.String()
}
