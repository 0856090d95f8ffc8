// Package tenants is the typed client for tenant-level settings and the
// tenant's user roster.
package tenants

import (
	"context"
	"time"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/querycache"
)

const listTTL = time.Minute

// Settings holds the tenant-level presentation settings.
type Settings struct {
	ID                   int64          `json:"id"`
	DisplayName          *string        `json:"display_name"`
	LogoURL              *string        `json:"logo_url"`
	ThemeSettings        map[string]any `json:"theme_settings"`
	NotificationSettings map[string]any `json:"notification_settings"`
	CustomMetadata       map[string]any `json:"custom_metadata"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// SettingsPatch is a partial update: only set fields are sent.
type SettingsPatch struct {
	DisplayName *string `json:"display_name,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

// SettingsService reads and updates the current tenant's settings.
type SettingsService struct {
	client  *client.Client
	cache   *querycache.Cache
	binding *querycache.Binding[*Settings]
}

// NewSettingsService creates the settings service.
func NewSettingsService(c *client.Client, cache *querycache.Cache) *SettingsService {
	s := &SettingsService{client: c, cache: cache}
	s.binding = querycache.NewBinding(cache, querycache.KeyTenantSettings, listTTL, func(ctx context.Context) (*Settings, error) {
		var out Settings
		if err := c.Get(ctx, "/tenants/settings", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	return s
}

// Get returns the current tenant's settings.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	out, err := s.binding.Get(ctx)
	if err != nil {
		return nil, client.Fallback(err, "failed to fetch tenant settings")
	}
	return out, nil
}

// Update patches the tenant settings. The current-user entry is invalidated
// alongside the settings entry because the tenant display name is surfaced
// through the session view. Role and ownership are not refetched here; they
// stay as-is until the next full current-user refetch.
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (*Settings, error) {
	out, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (*Settings, error) {
		var updated Settings
		if err := s.client.Patch(ctx, "/tenants/settings", patch, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	}, querycache.KeyTenantSettings, querycache.KeyCurrentUser)
	return out, client.Fallback(err, "failed to update tenant settings")
}
