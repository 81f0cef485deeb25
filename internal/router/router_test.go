package router

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
)

func reply(body string) Handler {
	return func(req *request.Request) response.Response {
		return response.OK(body)
	}
}

func TestResolveExact(t *testing.T) {
	r := New(nil)
	r.Handle("/hello", reply("hello")).Handle("/hook", reply("hook"))

	h, ok := r.Resolve("/hello")
	require.True(t, ok)
	assert.Equal(t, "hello", h(&request.Request{}).Body)

	// Test: no prefix, suffix or query matching
	for _, path := range []string{"/hello/", "/hell", "/hello?x=1", "/HELLO", ""} {
		_, ok := r.Resolve(path)
		assert.False(t, ok, "path %q should not match", path)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(logger.New(buf, "info"))

	r.Handle("/hello", reply("first"))
	assert.Empty(t, buf.String())

	r.Handle("/hello", reply("second"))

	h, ok := r.Resolve("/hello")
	require.True(t, ok)
	assert.Equal(t, "second", h(&request.Request{}).Body)
	assert.Equal(t, 1, r.Freeze().Len())

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "route already registered")
	assert.Contains(t, buf.String(), `"path":"/hello"`)
}

func TestFreeze(t *testing.T) {
	r := New(nil)
	r.Handle("/a", reply("a"))

	table := r.Freeze()
	r.Handle("/b", reply("b"))
	r.Handle("/a", reply("changed"))

	h, ok := table.Resolve("/a")
	require.True(t, ok)
	assert.Equal(t, "a", h(&request.Request{}).Body)

	_, ok = table.Resolve("/b")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}
