package mailer

import (
	"context"
	"sync"
)

// Mock records sent emails for tests and local development.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Send(_ context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, e)
	return nil
}
