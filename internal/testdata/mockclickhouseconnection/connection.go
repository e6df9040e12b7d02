package mockclickhouseconnection

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Connection struct {
	mock.Mock
}

func (m *Connection) Exec(ctx context.Context, query string, args ...any) error {
	callArgs := []any{ctx, query}
	callArgs = append(callArgs, args...)
	return m.Called(callArgs...).Error(0)
}

// Select records dest so tests can fill it from a Run callback.
func (m *Connection) Select(ctx context.Context, dest any, query string, args ...any) error {
	mockArgs := m.Called(ctx, dest, query, args)
	return mockArgs.Error(0)
}
