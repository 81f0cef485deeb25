package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/hanode/internal/headers"
)

func TestEncodeCompat(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"ok", OK("hi"), "HTTP/1.1 200 OK\r\n\r\nhi"},
		{"not found keeps literal OK", NotFound(), "HTTP/1.1 404 OK\r\n\r\n"},
		{"custom status", New(StatusCode(299), "x"), "HTTP/1.1 299 OK\r\n\r\nx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, Encode(buf, tt.resp, "HTTP/1.0", WireCompat))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEncodeStandard(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, NotFound(), "HTTP/1.0", WireStandard))
	assert.Equal(t, "HTTP/1.0 404 Not Found\r\nContent-Length: 0\r\nConnection: close\r\n\r\n", buf.String())

	// Test: unknown version falls back to HTTP/1.1
	buf = &bytes.Buffer{}
	require.NoError(t, Encode(buf, New(StatusBadRequest, "oops"), "", WireStandard))
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\nContent-Length: 4\r\nConnection: close\r\n\r\noops", buf.String())
}

func TestEncodeWriteError(t *testing.T) {
	err := Encode(&failingWriter{}, OK("hi"), "HTTP/1.1", WireCompat)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestWriterStatusLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	err := w.WriteStatusLine("HTTP/1.1", StatusBadRequest, StatusText(StatusBadRequest))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n", buf.String())

	// Test: status line can only be written once
	err = w.WriteStatusLine("HTTP/1.1", StatusOK, "OK")
	assert.Error(t, err)
}

func TestWriterOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	// Test: Can't write headers before status line
	err := w.WriteHeaders(headers.NewHeaders())
	assert.Error(t, err)

	// Test: Can't write body before headers
	_, err = w.WriteBody([]byte("x"))
	assert.Error(t, err)

	require.NoError(t, w.WriteStatusLine("HTTP/1.1", StatusOK, "OK"))
	h := headers.NewHeaders()
	h.Set("X-Test", "1")
	require.NoError(t, w.WriteHeaders(h))

	n, err := w.WriteBody([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = w.WriteBody([]byte("cd"))
	require.NoError(t, err)

	assert.Equal(t, "HTTP/1.1 200 OK\r\nX-Test: 1\r\n\r\nabcd", buf.String())
}

func TestBadRequestBody(t *testing.T) {
	resp := BadRequest("PUT / HTTP/1.1\r\n", errors.New("unsupported method: \"PUT\""))

	assert.Equal(t, StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Body, `PUT / HTTP/1.1\r\n`)
	assert.Contains(t, resp.Body, "unsupported method")
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", StatusText(StatusOK))
	assert.Equal(t, "Not Found", StatusText(StatusNotFound))
	assert.Equal(t, "Unknown Status", StatusText(StatusCode(299)))

	assert.True(t, StatusNotFound.IsClientError())
	assert.False(t, StatusOK.IsClientError())
	assert.True(t, StatusInternalServerError.IsServerError())
	assert.False(t, StatusBadRequest.IsServerError())
}

func TestParseWireFormat(t *testing.T) {
	f, err := ParseWireFormat("standard")
	require.NoError(t, err)
	assert.Equal(t, WireStandard, f)

	f, err = ParseWireFormat("")
	require.NoError(t, err)
	assert.Equal(t, WireCompat, f)

	_, err = ParseWireFormat("http2")
	assert.Error(t, err)

	assert.Equal(t, "compat", WireCompat.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}
