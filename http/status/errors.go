package status

type HTTPError struct {
	Message string
	Code    Code
	// Body is the canned page sent along with the error response.
	Body string
}

func NewError(code Code, message, body string) HTTPError {
	return HTTPError{
		Code:    code,
		Message: message,
		Body:    body,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrCloseConnection     = NewError(CloseConnection, "actively closing the connection", "")
	ErrNotFound            = NewError(NotFound, "not found", "<h1>404 Not found</h1>")
	ErrInternalServerError = NewError(InternalServerError, "failed to open", "<h1>500 Internal server error</h1>")
)
