package request

import (
	"github.com/Brownie44l1/hanode/internal/headers"
)

// extractBody returns everything after the first blank CRLF line, verbatim.
// A request without a blank line has an empty body.
func extractBody(raw []byte) string {
	idx := headers.SplitHead(raw)
	if idx == -1 {
		return ""
	}
	return string(raw[idx:])
}
