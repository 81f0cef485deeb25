package server

import (
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
)

// Config holds everything the server needs before Run
type Config struct {
	Host string
	Port uint16

	// Deadlines applied to each connection. Zero disables them, which
	// lets a stalled client hold the server forever.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ChunkSize is the size of a single socket read
	ChunkSize int
	// MaxRequestBytes caps the buffered request; <= 0 means no cap
	MaxRequestBytes int

	WireFormat response.WireFormat
}

// DefaultConfig listens on 127.0.0.1:8080
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ChunkSize:       request.DefaultChunkSize,
		MaxRequestBytes: 1 << 20,
		WireFormat:      response.WireCompat,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return errors.New("chunk size must be positive")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.MaxRequestBytes > 0 && c.MaxRequestBytes < c.ChunkSize {
		return errors.New("max request bytes must be at least one chunk")
	}
	return nil
}
