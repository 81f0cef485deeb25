package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/Brownie44l1/hanode/internal/headers"
)

const DefaultChunkSize = 1024

var (
	ErrRequestTooLarge = errors.New("request too large")
	ErrEmptyRequest    = errors.New("connection closed before any request data")
)

// ReadRaw accumulates chunk-sized reads from r until the request looks complete.
//
// There is no reliable framing without header parsing, so a request ends when:
//   - r reports io.EOF;
//   - the head is complete and its Content-Length (if any) is satisfied;
//   - a read comes back shorter than chunk, the request line is complete, and no
//     declared Content-Length is still outstanding;
//   - a read deadline on r expires once at least one full line is buffered.
//
// The last case is what terminates requests whose size is an exact multiple of
// the chunk size, so callers reading from a net.Conn must set a read deadline.
// maxBytes <= 0 disables the size cap.
func ReadRaw(r io.Reader, chunk []byte, maxBytes int) ([]byte, error) {
	if len(chunk) == 0 {
		chunk = make([]byte, DefaultChunkSize)
	}

	var buf []byte
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if maxBytes > 0 && len(buf)+n > maxBytes {
				return buf, fmt.Errorf("%w: more than %d bytes", ErrRequestTooLarge, maxBytes)
			}
			buf = append(buf, chunk[:n]...)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(buf) == 0 {
					return nil, ErrEmptyRequest
				}
				return buf, nil
			}
			if isTimeout(err) && hasLine(buf) {
				return buf, nil
			}
			return buf, fmt.Errorf("read request: %w", err)
		}

		if complete(buf, n < len(chunk)) {
			return buf, nil
		}
	}
}

func complete(buf []byte, shortRead bool) bool {
	if bodyStart := headers.SplitHead(buf); bodyStart != -1 {
		if cl, ok := headers.ContentLength(buf[:bodyStart]); ok {
			return len(buf)-bodyStart >= cl
		}
		return shortRead
	}
	return shortRead && hasLine(buf)
}

func hasLine(buf []byte) bool {
	return bytes.IndexByte(buf, '\n') != -1
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
