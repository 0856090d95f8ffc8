// Package contracts is the typed client for the contract resource and its
// tags. Dates are wire-format strings (YYYY-MM-DD) as served by the backend.
package contracts

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

const listTTL = time.Minute

// Contract is one contract record with its audit fields.
type Contract struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	ServiceProviderID int64      `json:"service_provider_id"`
	StartDate         string     `json:"start_date"`
	ReferenceNumber   *string    `json:"reference_number"`
	Description       *string    `json:"description"`
	EndDate           *string    `json:"end_date"`
	AutoRenewalDate   *string    `json:"auto_renewal_date"`
	SignatureDate     *string    `json:"signature_date"`
	TotalValue        *float64   `json:"total_value"`
	Cost              *float64   `json:"cost"`
	InternalOwner     *string    `json:"internal_owner"`
	LicenseCount      *int64     `json:"license_count"`
	RenewalAlertFlag  *bool      `json:"renewal_alert_flag"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	LastUpdatedAt     *time.Time `json:"last_updated_at"`
	Tags              []Tag      `json:"tags,omitempty"`
}

// CreatePayload carries the fields for contract creation. Title, provider and
// start date are required by the backend.
type CreatePayload struct {
	Title             string   `json:"title"`
	ServiceProviderID int64    `json:"service_provider_id"`
	StartDate         string   `json:"start_date"`
	ReferenceNumber   *string  `json:"reference_number,omitempty"`
	Description       *string  `json:"description,omitempty"`
	EndDate           *string  `json:"end_date,omitempty"`
	AutoRenewalDate   *string  `json:"auto_renewal_date,omitempty"`
	SignatureDate     *string  `json:"signature_date,omitempty"`
	TotalValue        *float64 `json:"total_value,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	InternalOwner     *string  `json:"internal_owner,omitempty"`
	LicenseCount      *int64   `json:"license_count,omitempty"`
	RenewalAlertFlag  *bool    `json:"renewal_alert_flag,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// UpdatePayload is a partial patch: only set fields are sent.
type UpdatePayload struct {
	Title             *string  `json:"title,omitempty"`
	ServiceProviderID *int64   `json:"service_provider_id,omitempty"`
	StartDate         *string  `json:"start_date,omitempty"`
	ReferenceNumber   *string  `json:"reference_number,omitempty"`
	Description       *string  `json:"description,omitempty"`
	EndDate           *string  `json:"end_date,omitempty"`
	AutoRenewalDate   *string  `json:"auto_renewal_date,omitempty"`
	SignatureDate     *string  `json:"signature_date,omitempty"`
	TotalValue        *float64 `json:"total_value,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	InternalOwner     *string  `json:"internal_owner,omitempty"`
	LicenseCount      *int64   `json:"license_count,omitempty"`
	RenewalAlertFlag  *bool    `json:"renewal_alert_flag,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// Service performs contract and tag CRUD through the shared pipeline.
type Service struct {
	client      *client.Client
	cache       *querycache.Cache
	binding     *querycache.Binding[[]Contract]
	tagsBinding *querycache.Binding[[]Tag]
}

// NewService creates the contract service.
func NewService(c *client.Client, cache *querycache.Cache) *Service {
	s := &Service{client: c, cache: cache}
	s.binding = querycache.NewBinding(cache, querycache.KeyContracts, listTTL, func(ctx context.Context) ([]Contract, error) {
		var out []Contract
		if err := c.Get(ctx, "/contracts", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	s.tagsBinding = querycache.NewBinding(cache, querycache.KeyContractTags, listTTL, func(ctx context.Context) ([]Tag, error) {
		var out []Tag
		if err := c.Get(ctx, "/tags", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return s
}

// List returns all contracts, served from cache within the staleness window.
func (s *Service) List(ctx context.Context) ([]Contract, error) {
	out, err := s.binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch contracts")
	}
	return out, nil
}

// Get returns one contract by id.
func (s *Service) Get(ctx context.Context, id int64) (*Contract, error) {
	var out Contract
	if err := s.client.Get(ctx, fmt.Sprintf("/contracts/%d", id), &out); err != nil {
		return nil, client.Fallback(err, "failed to fetch contract")
	}
	return &out, nil
}

// Search returns contracts matching q across title, reference and owner.
func (s *Service) Search(ctx context.Context, q string) ([]Contract, error) {
	var out []Contract
	if err := s.client.Get(ctx, "/contracts/search?q="+url.QueryEscape(q), &out); err != nil {
		return nil, client.Fallback(err, "failed to search contracts")
	}
	return out, nil
}

// Create adds a contract and invalidates the contract list.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Contract, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Contract, error) {
		var created Contract
		if err := s.client.Post(ctx, "/contracts", payload, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, querycache.KeyContracts)
	return out, client.Fallback(err, "failed to create contract")
}

// Update patches a contract and invalidates the contract list.
func (s *Service) Update(ctx context.Context, id int64, patch UpdatePayload) (*Contract, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Contract, error) {
		var updated Contract
		if err := s.client.Put(ctx, fmt.Sprintf("/contracts/%d", id), patch, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, querycache.KeyContracts)
	return out, client.Fallback(err, "failed to update contract")
}

// Delete removes a contract and invalidates the contract list.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.Delete(ctx, fmt.Sprintf("/contracts/%d", id))
	}, querycache.KeyContracts)
	return client.Fallback(err, "failed to delete contract")
}
