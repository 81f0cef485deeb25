package request

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrMethodMissing      = errors.New("method not specified")
	ErrUnsupportedMethod  = errors.New("unsupported method")
	ErrURIMissing         = errors.New("URI not specified")
	ErrURIInvalid         = errors.New("URI is not valid UTF-8")
	ErrVersionMissing     = errors.New("HTTP version not specified")
	ErrUnsupportedVersion = errors.New("unsupported HTTP version, only HTTP/1.0 and HTTP/1.1 are supported")
)

// firstLine returns everything up to the first LF, without the line ending
func firstLine(raw []byte) []byte {
	if idx := bytes.IndexByte(raw, '\n'); idx != -1 {
		raw = raw[:idx]
	}
	return bytes.TrimSuffix(raw, []byte("\r"))
}

// parseRequestLine parses: METHOD URI VERSION
// Tokens are separated by any run of whitespace; tokens past the third are ignored.
func parseRequestLine(line []byte) (Method, string, string, error) {
	parts := bytes.Fields(line)
	if len(parts) > 3 {
		parts = parts[:3]
	}

	if len(parts) < 1 {
		return "", "", "", ErrMethodMissing
	}
	method, err := parseMethod(parts[0])
	if err != nil {
		return "", "", "", err
	}

	if len(parts) < 2 {
		return "", "", "", ErrURIMissing
	}
	if !utf8.Valid(parts[1]) {
		return "", "", "", fmt.Errorf("%w: %q", ErrURIInvalid, parts[1])
	}
	uri := string(parts[1])

	if len(parts) < 3 {
		return "", "", "", ErrVersionMissing
	}
	version := string(parts[2])
	if !isValidVersion(version) {
		return "", "", "", fmt.Errorf("%w, but got %q", ErrUnsupportedVersion, version)
	}

	return method, uri, version, nil
}

// parseMethod is case-sensitive: "get" is rejected
func parseMethod(token []byte) (Method, error) {
	switch m := Method(token); m {
	case MethodGet, MethodPost:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, token)
	}
}

func isValidVersion(version string) bool {
	return version == Version10 || version == Version11
}
