// Package vendors is the typed client for the vendor resource: the service
// providers contracts are signed against.
package vendors

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

const listTTL = time.Minute

// Vendor is one service-provider record.
type Vendor struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactName   *string    `json:"contact_name"`
	ContactEmail  *string    `json:"contact_email"`
	Website       *string    `json:"website"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedAt *time.Time `json:"last_updated_at"`
}

// CreatePayload carries the fields for vendor creation.
type CreatePayload struct {
	Name         string  `json:"name"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Website      *string `json:"website,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdatePayload is a partial patch: only set fields are sent.
type UpdatePayload struct {
	Name         *string `json:"name,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Website      *string `json:"website,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Service performs vendor CRUD through the shared pipeline.
type Service struct {
	client  *client.Client
	cache   *querycache.Cache
	binding *querycache.Binding[[]Vendor]
}

// NewService creates the vendor service.
func NewService(c *client.Client, cache *querycache.Cache) *Service {
	s := &Service{client: c, cache: cache}
	s.binding = querycache.NewBinding(cache, querycache.KeyVendors, listTTL, func(ctx context.Context) ([]Vendor, error) {
		var out []Vendor
		if err := c.Get(ctx, "/vendors", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return s
}

// List returns all vendors, served from cache within the staleness window.
func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	vendors, err := s.binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch vendors")
	}
	return vendors, nil
}

// Get returns one vendor by id.
func (s *Service) Get(ctx context.Context, id int64) (*Vendor, error) {
	var out Vendor
	if err := s.client.Get(ctx, fmt.Sprintf("/vendors/%d", id), &out); err != nil {
		return nil, client.Fallback(err, "failed to fetch vendor")
	}
	return &out, nil
}

// Create adds a vendor and invalidates the vendor list.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Vendor, error) {
	v, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Vendor, error) {
		var out Vendor
		if err := s.client.Post(ctx, "/vendors", payload, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, querycache.KeyVendors)
	return v, client.Fallback(err, "failed to create vendor")
}

// Update patches a vendor and invalidates the vendor list.
func (s *Service) Update(ctx context.Context, id int64, patch UpdatePayload) (*Vendor, error) {
	v, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Vendor, error) {
		var out Vendor
		if err := s.client.Put(ctx, fmt.Sprintf("/vendors/%d", id), patch, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, querycache.KeyVendors)
	return v, client.Fallback(err, "failed to update vendor")
}

// Delete removes a vendor and invalidates the vendor list.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.Delete(ctx, fmt.Sprintf("/vendors/%d", id))
	}, querycache.KeyVendors)
	return client.Fallback(err, "failed to delete vendor")
}
