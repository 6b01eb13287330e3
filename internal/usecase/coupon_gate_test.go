package usecase_test

import (
	"testing"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestCouponGate_CaseInsensitiveMatch(t *testing.T) {
	gate := usecase.NewCouponGate("SAVE10")

	assert.True(t, gate.Check("SAVE10").Valid)
	assert.True(t, gate.Check("save10").Valid, "comparison is case-insensitive")
	assert.True(t, gate.Check("  Save10 ").Valid, "input is trimmed before comparing")
}

func TestCouponGate_Mismatch(t *testing.T) {
	gate := usecase.NewCouponGate("SAVE10")

	assert.False(t, gate.Check("SAVE11").Valid)
	assert.False(t, gate.Check("SAVE100").Valid, "length mismatch short-circuits to false")
	assert.False(t, gate.Check("").Valid)
}

func TestCouponGate_DisabledWithoutSecret(t *testing.T) {
	gate := usecase.NewCouponGate("")

	assert.False(t, gate.Enabled())
	assert.False(t, gate.Check("anything").Valid, "unconfigured gate always rejects")
	assert.False(t, gate.Check("").Valid, "empty input never matches an empty secret")
}
