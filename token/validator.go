package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Validator checks the expiry claim of a stored bearer token. The token is
// parsed without signature verification: the client only reads `exp` to avoid
// dispatching requests the backend would reject anyway. Integrity checking
// stays with the backend.
type Validator struct {
	nowTime func() time.Time
}

// ValidatorOption defines a function type to modify the Validator instance.
type ValidatorOption func(*Validator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.nowTime = nowFunc
	}
}

// NewValidator creates a Validator with an optional injectable clock.
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{nowTime: time.Now}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// IsExpired reports whether rawToken's `exp` claim is at or before the current
// instant. Any decode or parse failure - wrong segment count, bad base64,
// non-JSON payload, missing exp - is treated as expired. An unparseable token
// must never be treated as valid.
func (v *Validator) IsExpired(rawToken string) bool {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return !v.nowTime().Before(exp.Time)
}
