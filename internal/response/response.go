package response

import (
	"fmt"
)

// Response is a handler's reply. The body is sent as-is, with no content type.
type Response struct {
	Status StatusCode
	Body   string
}

func New(status StatusCode, body string) Response {
	return Response{Status: status, Body: body}
}

func OK(body string) Response {
	return New(StatusOK, body)
}

// NotFound is what the server sends when no route matches: an empty body.
func NotFound() Response {
	return New(StatusNotFound, "")
}

// BadRequest describes the raw request and why it could not be parsed.
func BadRequest(raw string, err error) Response {
	return New(StatusBadRequest, fmt.Sprintf("bad request: %q: %v", raw, err))
}

func InternalServerError() Response {
	return New(StatusInternalServerError, "Internal Server Error")
}
