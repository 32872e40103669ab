package portfolio_test

import (
	"testing"

	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/templates/portfolio"
	"github.com/stretchr/testify/assert"
)

func TestTemplate_DustThresholdFollowsToggle(t *testing.T) {
	t.Parallel()

	template := portfolio.Template()
	addr := "0x1111111111111111111111111111111111111111"

	// Toggle off: threshold hidden, negative stored value stays silent.
	errs := schema.Validate(template, schema.Config{
		"address":       addr,
		"hideDust":      false,
		"dustThreshold": float64(-3),
	})
	assert.NotContains(t, errs, "dustThreshold")

	errs = schema.Validate(template, schema.Config{
		"address":       addr,
		"hideDust":      true,
		"dustThreshold": float64(-3),
	})
	assert.Equal(t, "Dust Threshold must be at least 0", errs["dustThreshold"])
}

func TestTemplate_AlertEmailFormat(t *testing.T) {
	t.Parallel()

	errs := schema.Validate(portfolio.Template(), schema.Config{
		"address":    "0x1111111111111111111111111111111111111111",
		"alertEmail": "not-an-email",
	})
	assert.Equal(t, "Alert Email must be a valid email address", errs["alertEmail"])
}
