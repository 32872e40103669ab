package limitorder_test

import (
	"strings"
	"testing"

	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/templates/limitorder"
	"github.com/stretchr/testify/assert"
)

func TestTemplate_PriceMustBePositive(t *testing.T) {
	t.Parallel()

	template := limitorder.Template()

	errs := schema.Validate(template, schema.Config{"price": float64(0)})
	assert.Equal(t, "Limit Price must be greater than 0", errs["price"])

	errs = schema.Validate(template, schema.Config{"price": float64(1850.5)})
	assert.NotContains(t, errs, "price")
}

func TestTemplate_NotesLengthBound(t *testing.T) {
	t.Parallel()

	errs := schema.Validate(limitorder.Template(), schema.Config{
		"price": float64(1),
		"notes": strings.Repeat("x", 281),
	})
	assert.Equal(t, "Notes must be at most 280 characters", errs["notes"])
}

func TestTemplate_Defaults(t *testing.T) {
	t.Parallel()

	defaults := schema.Defaults(limitorder.Template())

	assert.Equal(t, "23:59", defaults["expiryTime"])
	assert.Equal(t, "", defaults["expiryDate"])
	assert.Equal(t, false, defaults["partialFill"])
}
