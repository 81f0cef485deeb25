package server

import (
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/hanode/internal/response"
)

// Metrics counts answered requests. Connections dropped on an I/O error
// before a response was written are not counted.
type Metrics struct {
	requests   atomic.Int64
	active     atomic.Int64
	clientErrs atomic.Int64
	serverErrs atomic.Int64
	latencySum atomic.Int64 // nanoseconds
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) connOpened() { m.active.Add(1) }
func (m *Metrics) connClosed() { m.active.Add(-1) }

// RecordRequest records one response, from the first read to the last write
func (m *Metrics) RecordRequest(status response.StatusCode, took time.Duration) {
	m.requests.Add(1)
	m.latencySum.Add(took.Nanoseconds())

	switch {
	case status.IsClientError():
		m.clientErrs.Add(1)
	case status.IsServerError():
		m.serverErrs.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	RequestsTotal     int64
	ActiveConnections int64
	Errors4xx         int64
	Errors5xx         int64
	AverageLatency    time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		RequestsTotal:     m.requests.Load(),
		ActiveConnections: m.active.Load(),
		Errors4xx:         m.clientErrs.Load(),
		Errors5xx:         m.serverErrs.Load(),
	}
	if s.RequestsTotal > 0 {
		s.AverageLatency = time.Duration(m.latencySum.Load() / s.RequestsTotal)
	}
	return s
}
