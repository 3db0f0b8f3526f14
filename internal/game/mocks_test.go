package game

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// recordConn is a Conn that records every payload sent to it.
type recordConn struct {
	id     int64
	mu     sync.Mutex
	sent   []protocol.Payload
	closed bool
}

func newRecordConn(id int64) *recordConn { return &recordConn{id: id} }

func (c *recordConn) ID() int64 { return c.id }

func (c *recordConn) Send(p protocol.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	c.sent = append(c.sent, p)
	return nil
}

func (c *recordConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *recordConn) allOfType(t protocol.PayloadType) []protocol.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []protocol.Payload
	for _, p := range c.sent {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

func (c *recordConn) lastOfType(t protocol.PayloadType) (protocol.Payload, bool) {
	all := c.allOfType(t)
	if len(all) == 0 {
		return protocol.Payload{}, false
	}
	return all[len(all)-1], true
}

// MockConn is a testify mock for tests asserting call expectations.
type MockConn struct {
	mock.Mock
}

func (m *MockConn) ID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockConn) Send(p protocol.Payload) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockConn) Close() {
	m.Called()
}
