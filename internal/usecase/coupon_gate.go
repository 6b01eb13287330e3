package usecase

import (
	"crypto/subtle"
	"strings"
)

// CouponCheckResult reports whether the supplied code unlocks the paid feature.
type CouponCheckResult struct {
	Valid bool `json:"valid"`
}

// CouponGate compares a caller-supplied code against the one server-held
// secret. Comparison is case-insensitive: both sides are trimmed and
// uppercased before a constant-time compare. Differing lengths return false
// immediately, an accepted minor timing leak.
type CouponGate struct {
	secret string
}

// NewCouponGate creates a gate around the configured secret. An empty secret
// disables the feature: every check returns invalid.
func NewCouponGate(secret string) CouponGate {
	return CouponGate{secret: secret}
}

// Enabled reports whether a coupon secret is configured.
func (g CouponGate) Enabled() bool {
	return g.secret != ""
}

// Check compares the code against the secret.
func (g CouponGate) Check(code string) CouponCheckResult {
	if g.secret == "" {
		return CouponCheckResult{Valid: false}
	}

	a := strings.ToUpper(strings.TrimSpace(code))
	b := strings.ToUpper(strings.TrimSpace(g.secret))
	if len(a) != len(b) {
		return CouponCheckResult{Valid: false}
	}

	return CouponCheckResult{Valid: subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1}
}
