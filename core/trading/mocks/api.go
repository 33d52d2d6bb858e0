package mocks

import (
	"context"

	"dropsync/core/trading"

	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of trading.API
type API struct {
	mock.Mock
}

func (m *API) FetchActiveListings(ctx context.Context, creds trading.Credentials) ([]trading.Listing, error) {
	args := m.Called(ctx, creds)
	if listings, ok := args.Get(0).([]trading.Listing); ok {
		return listings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ReviseQuantities(ctx context.Context, creds trading.Credentials, items []trading.InventoryStatus) (int, error) {
	args := m.Called(ctx, creds, items)
	return args.Int(0), args.Error(1)
}
