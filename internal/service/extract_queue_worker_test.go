package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func TestWorker_DispatchesClaimedInvoices(t *testing.T) {
	invRepo := new(mocks.MockInvoiceRepo)
	invSvc := new(mocks.MockInvoiceService)

	queued := domain.Invoice{
		ID:               uuid.New(),
		OrganizationID:   uuid.New(),
		ExtractionStatus: domain.ExtractionStatusProcessing,
		ExtractAttempts:  0,
	}

	invRepo.On("ClaimQueued", mock.Anything, 2).Return([]domain.Invoice{queued}, nil).Once()
	invRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).Return([]domain.Invoice{}, nil)

	dispatched := make(chan *domain.Invoice, 1)
	invSvc.On("ExtractInvoice", mock.Anything, mock.AnythingOfType("*domain.Invoice"), 3).
		Run(func(args mock.Arguments) {
			dispatched <- args.Get(1).(*domain.Invoice)
		})

	w := service.NewExtractQueueWorker(invRepo, invSvc, service.ExtractQueueConfig{
		PollInterval: 10 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case inv := <-dispatched:
		assert.Equal(t, queued.ID, inv.ID)
		assert.Equal(t, 1, inv.ExtractAttempts)
	case <-time.After(2 * time.Second):
		t.Fatal("worker never dispatched the claimed invoice")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	invRepo.AssertExpectations(t)
	invSvc.AssertExpectations(t)
}

func TestWorker_IdleWhenQueueEmpty(t *testing.T) {
	invRepo := new(mocks.MockInvoiceRepo)
	invSvc := new(mocks.MockInvoiceService)

	invRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).Return([]domain.Invoice{}, nil)

	w := service.NewExtractQueueWorker(invRepo, invSvc, service.ExtractQueueConfig{
		PollInterval: 10 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	invSvc.AssertNotCalled(t, "ExtractInvoice", mock.Anything, mock.Anything, mock.Anything)
}
