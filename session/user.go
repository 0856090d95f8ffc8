package session

import "time"

// User is the authenticated principal as reported by the backend. It is never
// constructed locally and never partially updated: every refetch replaces it
// wholesale.
type User struct {
	UserID          int64   `json:"user_id"`
	Email           string  `json:"email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Role            string  `json:"role"`
	IsOwner         bool    `json:"is_owner"`
	TenantID        int64   `json:"tenant_id"`
	TenantName      string  `json:"tenant_name"`
	TenantSubdomain string  `json:"tenant_subdomain"`
}

// AuthSession is one backend-side session record for the current user.
type AuthSession struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	LastUsedAt time.Time      `json:"last_used_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
	Status     string         `json:"status"`
	DeviceInfo map[string]any `json:"device_info"`
	IPAddress  *string        `json:"ip_address"`
	UserAgent  *string        `json:"user_agent"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	TenantSubdomain *string `json:"tenant_subdomain,omitempty"`
}

type signupResponse struct {
	Message      string  `json:"message"`
	UserID       *string `json:"user_id"`
	SessionToken *string `json:"session_token"`
}

type sessionListResponse struct {
	Sessions []AuthSession `json:"sessions"`
	Total    int           `json:"total"`
}
