package headers

import (
	"bytes"
	"strconv"
	"strings"
)

// Headers is an ordered header set used when emitting responses.
// Names are matched case-insensitively but written as first set.
type Headers struct {
	names  []string
	values map[string]string
}

func NewHeaders() *Headers {
	return &Headers{
		values: make(map[string]string),
	}
}

// Set replaces the value for a header, keeping its first position
func (h *Headers) Set(key, value string) {
	lk := strings.ToLower(key)
	if _, ok := h.values[lk]; !ok {
		h.names = append(h.names, key)
	}
	h.values[lk] = value
}

// Each calls fn for every header in insertion order
func (h *Headers) Each(fn func(name, value string)) {
	for _, name := range h.names {
		fn(name, h.values[strings.ToLower(name)])
	}
}

var (
	crlf       = []byte("\r\n")
	headEnding = []byte("\r\n\r\n")
)

// SplitHead returns the index where the body starts in a raw request,
// or -1 when the blank line has not arrived yet.
func SplitHead(raw []byte) int {
	idx := bytes.Index(raw, headEnding)
	if idx == -1 {
		return -1
	}
	return idx + len(headEnding)
}

// Lookup scans the header lines of a raw request head for name.
// The request line is skipped, malformed lines are ignored; this is
// not a full header parser.
func Lookup(head []byte, name string) (string, bool) {
	lines := bytes.Split(head, crlf)
	if len(lines) < 2 {
		return "", false
	}

	for _, line := range lines[1:] {
		if len(line) == 0 {
			break
		}
		colonIdx := bytes.IndexByte(line, ':')
		if colonIdx <= 0 {
			continue
		}
		if strings.EqualFold(string(line[:colonIdx]), name) {
			return string(bytes.TrimSpace(line[colonIdx+1:])), true
		}
	}
	return "", false
}

// ContentLength returns the declared Content-Length of a raw request head.
// Missing or unparsable values report false.
func ContentLength(head []byte) (int, bool) {
	v, ok := Lookup(head, "Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
