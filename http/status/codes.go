package status

type (
	Code   uint16
	Status string
)

// Only the codes the server is able to respond with are listed.
const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	NotFound            Code = 404 // RFC 9110, 15.5.5
	InternalServerError Code = 500 // RFC 9110, 15.6.1

	// CloseConnection is not a real HTTP code. It tells the connection must be closed
	// without any response.
	CloseConnection Code = 0
)

var KnownCodes = []Code{OK, NotFound, InternalServerError}

// Text returns a reason phrase for the code. It returns the empty string if the code
// is unknown.
//
// Note that 500 keeps its lower-cased "server error" spelling, clients relying on the
// exact byte sequence of the status line expect it this way.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal server error"
	default:
		return ""
	}
}

// StringCode returns the code in its decimal form without allocating.
func StringCode(code Code) string {
	switch code {
	case OK:
		return "200"
	case NotFound:
		return "404"
	case InternalServerError:
		return "500"
	default:
		return ""
	}
}
