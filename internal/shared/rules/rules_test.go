package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	rule := NotBlank("value is required")

	blank := "  \t\n "
	filled := "ok"

	assert.NoError(t, rule.Validate("ok"))
	assert.NoError(t, rule.Validate(&filled))
	assert.NoError(t, rule.Validate((*string)(nil)), "nil is left to the presence rules")

	assert.EqualError(t, rule.Validate("   "), "value is required")
	assert.EqualError(t, rule.Validate(&blank), "value is required")
	assert.EqualError(t, rule.Validate(""), "value is required")
}
