package response

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Brownie44l1/hanode/internal/headers"
)

// WireFormat selects how a Response is rendered on the wire.
type WireFormat int

const (
	// WireCompat writes "HTTP/1.1 <status> OK\r\n\r\n<body>" for every response:
	// fixed version, the literal reason "OK" and no headers. This is not
	// conformant HTTP; it matches what existing clients of this server expect.
	WireCompat WireFormat = iota
	// WireStandard echoes the request version, uses the real reason phrase
	// and sends Content-Length and Connection: close.
	WireStandard
)

func (f WireFormat) String() string {
	switch f {
	case WireCompat:
		return "compat"
	case WireStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// ParseWireFormat maps "compat"/"standard" to a WireFormat
func ParseWireFormat(s string) (WireFormat, error) {
	switch s {
	case "compat", "":
		return WireCompat, nil
	case "standard":
		return WireStandard, nil
	default:
		return WireCompat, fmt.Errorf("unknown wire format %q", s)
	}
}

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one response to an io.Writer, in order: status line, headers, body.
type Writer struct {
	w     io.Writer
	state writerState
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes "<version> <code> <reason>\r\n"
func (w *Writer) WriteStatusLine(version string, code StatusCode, reason string) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	statusLine := fmt.Sprintf("%s %d %s\r\n", version, code, reason)
	if _, err := io.WriteString(w.w, statusLine); err != nil {
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes the header lines and the blank line ending the head
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	var err error
	if h != nil {
		h.Each(func(name, value string) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w.w, "%s: %s\r\n", name, value)
		})
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w.w, "\r\n"); err != nil {
		return err
	}
	w.state = stateHeadersWritten
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != stateHeadersWritten && w.state != stateBodyWritten {
		return 0, fmt.Errorf("must write status line and headers before body")
	}

	n, err := w.w.Write(p)
	if err != nil {
		return n, err
	}

	w.state = stateBodyWritten
	return n, nil
}

// Encode renders resp in the given format and flushes it to w in one go.
// version is the request's HTTP version; it is only echoed by WireStandard
// and may be empty when the request could not be parsed.
func Encode(w io.Writer, resp Response, version string, format WireFormat) error {
	bw := bufio.NewWriter(w)
	rw := NewWriter(bw)

	var h *headers.Headers
	switch format {
	case WireStandard:
		if version == "" {
			version = "HTTP/1.1"
		}
		h = headers.NewHeaders()
		h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
		h.Set("Connection", "close")
		if err := rw.WriteStatusLine(version, resp.Status, StatusText(resp.Status)); err != nil {
			return err
		}
	default:
		if err := rw.WriteStatusLine("HTTP/1.1", resp.Status, "OK"); err != nil {
			return err
		}
	}

	if err := rw.WriteHeaders(h); err != nil {
		return err
	}
	if _, err := rw.WriteBody([]byte(resp.Body)); err != nil {
		return err
	}
	return bw.Flush()
}
