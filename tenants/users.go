package tenants

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

// User is one member of the tenant.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Role      string     `json:"role"`
	IsOwner   bool       `json:"is_owner"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserList is the backend's list envelope.
type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// CreateUserPayload carries the fields for adding a member.
type CreateUserPayload struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      string  `json:"role"`
	IsOwner   bool    `json:"is_owner"`
}

// UpdateUserPayload is a partial patch: only set fields are sent.
type UpdateUserPayload struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// UsersService performs tenant-user CRUD through the shared pipeline.
type UsersService struct {
	client  *client.Client
	cache   *querycache.Cache
	binding *querycache.Binding[*UserList]
}

// NewUsersService creates the tenant-user service.
func NewUsersService(c *client.Client, cache *querycache.Cache) *UsersService {
	s := &UsersService{client: c, cache: cache}
	s.binding = querycache.NewBinding(cache, querycache.KeyTenantUsers, listTTL, func(ctx context.Context) (*UserList, error) {
		var out UserList
		if err := c.Get(ctx, "/users", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	return s
}

// List returns the tenant's members.
func (s *UsersService) List(ctx context.Context) (*UserList, error) {
	out, err := s.binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch users")
	}
	return out, nil
}

// Get returns one member by id.
func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, client.Fallback(err, "failed to fetch user")
	}
	return &out, nil
}

// Create adds a member and invalidates the user list.
func (s *UsersService) Create(ctx context.Context, payload CreateUserPayload) (*User, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*User, error) {
		var created User
		if err := s.client.Post(ctx, "/users", payload, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}, querycache.KeyTenantUsers)
	return out, client.Fallback(err, "failed to create user")
}

// Update patches a member and invalidates the user list.
func (s *UsersService) Update(ctx context.Context, id int64, patch UpdateUserPayload) (*User, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*User, error) {
		var updated User
		if err := s.client.Patch(ctx, fmt.Sprintf("/users/%d", id), patch, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, querycache.KeyTenantUsers)
	return out, client.Fallback(err, "failed to update user")
}

// Delete removes a member and invalidates the user list.
func (s *UsersService) Delete(ctx context.Context, id int64) error {
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.Delete(ctx, fmt.Sprintf("/users/%d", id))
	}, querycache.KeyTenantUsers)
	return client.Fallback(err, "failed to delete user")
}
