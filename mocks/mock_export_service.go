package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) JournalXLSX(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]byte, string, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
