package contracts

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

// Tag labels contracts for filtering.
type Tag struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// TagPayload carries the fields for tag creation and partial update.
type TagPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListTags returns all tags, served from cache within the staleness window.
func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	out, err := s.tagsBinding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch tags")
	}
	return out, nil
}

// CreateTag adds a tag and invalidates the tag list.
func (s *Service) CreateTag(ctx context.Context, name string, description *string) (*Tag, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Tag, error) {
		var created Tag
		payload := TagPayload{Name: &name, Description: description}
		if err := s.client.Post(ctx, "/tags", payload, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, querycache.KeyContractTags)
	return out, client.Fallback(err, "failed to create tag")
}

// UpdateTag patches a tag and invalidates both the tag list and the contract
// list, since contracts embed their tags.
func (s *Service) UpdateTag(ctx context.Context, id int64, patch TagPayload) (*Tag, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Tag, error) {
		var updated Tag
		if err := s.client.Patch(ctx, fmt.Sprintf("/tags/%d", id), patch, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, querycache.KeyContractTags, querycache.KeyContracts)
	return out, client.Fallback(err, "failed to update tag")
}

// DeleteTag removes a tag and invalidates the tag and contract lists.
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.Delete(ctx, fmt.Sprintf("/tags/%d", id))
	}, querycache.KeyContractTags, querycache.KeyContracts)
	return client.Fallback(err, "failed to delete tag")
}
