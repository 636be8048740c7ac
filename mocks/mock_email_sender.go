package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSupplierPendingEmail(ctx context.Context, toEmail, toName, supplierName, supplierCode string) error {
	args := m.Called(ctx, toEmail, toName, supplierName, supplierCode)
	return args.Error(0)
}
