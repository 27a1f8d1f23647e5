package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPresigner is a mock implementation of service.Presigner
type MockPresigner struct {
	mock.Mock
}

// PresignPut mocks the PresignPut method
func (m *MockPresigner) PresignPut(ctx context.Context, key, contentType string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiration)
	return args.String(0), args.Error(1)
}

// ObjectURL mocks the ObjectURL method
func (m *MockPresigner) ObjectURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
