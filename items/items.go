// Package items is the typed client for the item resource. The backend only
// supports reading and creating items, so there is no update or delete here.
package items

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

const listTTL = time.Minute

// Item is one item record.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePayload carries the fields for item creation.
type CreatePayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Service performs item reads and creation through the shared pipeline.
type Service struct {
	client  *client.Client
	cache   *querycache.Cache
	binding *querycache.Binding[[]Item]
}

// NewService creates the item service.
func NewService(c *client.Client, cache *querycache.Cache) *Service {
	s := &Service{client: c, cache: cache}
	s.binding = querycache.NewBinding(cache, querycache.KeyItems, listTTL, func(ctx context.Context) ([]Item, error) {
		var out []Item
		if err := c.Get(ctx, "/items", &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	return s
}

// List returns all items, served from cache within the staleness window.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	out, err := s.binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch items")
	}
	return out, nil
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	var out Item
	if err := s.client.Get(ctx, fmt.Sprintf("/items/%d", id), &out); err != nil {
		return nil, client.Fallback(err, "failed to fetch item")
	}
	return &out, nil
}

// Create adds an item and invalidates the item list.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Item, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Item, error) {
		var created Item
		if err := s.client.Post(ctx, "/items", payload, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, querycache.KeyItems)
	return out, client.Fallback(err, "failed to create item")
}
