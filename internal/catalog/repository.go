package catalog

import (
	"context"
	"fmt"
)

// Repository is the controller's only view of the network.
type Repository interface {
	FetchAll(ctx context.Context) ([]Record, error)
}

// HTTPRepository serves records from an AppsFetcher. It performs exactly one
// round trip per call and never retries or caches.
type HTTPRepository struct {
	client AppsFetcher
}

var _ Repository = (*HTTPRepository)(nil)

// NewRepository wraps client.
func NewRepository(client AppsFetcher) *HTTPRepository {
	return &HTTPRepository{client: client}
}

// FetchAll returns the records decoded by the client, in response order.
func (r *HTTPRepository) FetchAll(ctx context.Context) ([]Record, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("fetch apps: repository has no client")
	}
	records, err := r.client.FetchApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch apps: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
