package spindle

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrBadRequestLine = errors.New("malformed request line")

// Request is the parsed request line. Only the request line is read off the
// connection; headers and bodies are ignored.
type Request struct {
	Method string
	Path   string
	Proto  string
}

// ParseRequestLine parses a "METHOD PATH PROTO" line into a Request.
func ParseRequestLine(line string) (*Request, error) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadRequestLine, strings.TrimSpace(line))
	}

	return &Request{
		Method: parts[0],
		Path:   parts[1],
		Proto:  parts[2],
	}, nil
}

// Response is a minimal HTTP response: a status line, a Content-Length
// header and the body. Nothing else is ever sent.
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte
}

func NewResponse(status int, body []byte) *Response {
	return &Response{
		StatusCode: status,
		StatusText: statusText(status),
		Body:       body,
	}
}

func statusText(status int) string {
	switch status {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// Write formats the response onto the wire.
func (r *Response) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\nContent-Length: %d\r\n\r\n%s",
		r.StatusCode, r.StatusText, len(r.Body), r.Body)
	return err
}
