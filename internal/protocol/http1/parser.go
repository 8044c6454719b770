package http1

import (
	"bytes"
	"errors"
	"strings"

	"github.com/indigo-web/utils/uf"
)

// ErrNoPath is returned for any request line the path can't be extracted from.
var ErrNoPath = errors.New("no path in the request line")

const requestPrefix = "GET /"

// ParseRequestPath extracts the requested path out of the first line of the block. The
// leading slash is stripped, so the path is always relative. The line must start with
// the GET method and have a space after the path; everything behind it, including the
// protocol token, is ignored. An empty path is replaced by index.
//
// The only syntactic guard is against a double leading slash, which would otherwise turn
// the path absolute. Dot-segments are left for the resolver.
func ParseRequestPath(block []byte, index string) (string, error) {
	line := block
	if lf := bytes.IndexByte(block, '\n'); lf != -1 {
		line = block[:lf]
	}

	if len(line) < len(requestPrefix) || uf.B2S(line[:len(requestPrefix)]) != requestPrefix {
		return "", ErrNoPath
	}

	rest := uf.B2S(line[len(requestPrefix):])
	sp := strings.IndexByte(rest, ' ')

	var path string
	switch sp {
	case -1:
		return "", ErrNoPath
	case 0:
		path = index
	default:
		// copy the path out, as the block is going to be reused
		path = strings.Clone(rest[:sp])
	}

	if len(path) == 0 || path[0] == '/' {
		return "", ErrNoPath
	}

	return path, nil
}
