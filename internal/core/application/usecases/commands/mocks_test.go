package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ordermgmt/internal/core/application/contracts"
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusIf(
	ctx context.Context, id kernel.UUID, expected, next order.Status,
) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GetSubmittedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockEnvelopePublisher struct{ mock.Mock }

func (m *MockEnvelopePublisher) Publish(ctx context.Context, env contracts.FulfillmentEnvelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

type MockProcessedEnvelopeStore struct{ mock.Mock }

func (m *MockProcessedEnvelopeStore) IsProcessed(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProcessedEnvelopeStore) MarkProcessed(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
