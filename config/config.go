package config

import (
	"time"
)

type (
	NET struct {
		// ReadBufferSize is both the size of a single read from the socket and the capacity
		// of the header window. A request line that doesn't fit into it is never completed.
		ReadBufferSize int
		// ReadTimeout bounds how long a single read may block. Zero disables the deadline,
		// so a silent peer holds its connection (and goroutine) for as long as it wishes.
		ReadTimeout time.Duration `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Static struct {
		// Root is the directory requested paths are resolved against. The default "."
		// means the current working directory of the process.
		Root string
		// Index is served instead of a directory and in place of an empty path.
		Index string
	}

	Log struct {
		// Format selects the access log encoding, either "text" or "json".
		Format string
	}
)

const (
	LogText = "text"
	LogJSON = "json"
)

// Config holds settings used across the server.
//
// Always start from Default() and modify what's needed. A manually initialized config
// will most likely end up with zero-sized buffers.
type Config struct {
	NET    NET
	Static Static
	Log    Log
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize:            4 * 1024,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Static: Static{
			Root:  ".",
			Index: "index.html",
		},
		Log: Log{
			Format: LogText,
		},
	}
}
