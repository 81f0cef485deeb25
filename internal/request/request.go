package request

import (
	"fmt"
)

type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

const (
	Version10 = "HTTP/1.0"
	Version11 = "HTTP/1.1"
)

// Request is one parsed client request. It owns copies of the bytes it
// was parsed from, so the read buffer can be reused afterwards.
type Request struct {
	Method  Method
	URI     string
	Version string
	Body    string
}

// HasBody reports whether the request carries a body. Only POST does.
func (r *Request) HasBody() bool {
	return r.Method == MethodPost
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s %s", r.Method, r.URI, r.Version)
}

// Parse turns the raw bytes of one request into a Request.
// Only the request line is validated; header lines are ignored.
func Parse(raw []byte) (*Request, error) {
	method, uri, version, err := parseRequestLine(firstLine(raw))
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:  method,
		URI:     uri,
		Version: version,
	}

	if req.HasBody() {
		req.Body = extractBody(raw)
	}
	return req, nil
}
