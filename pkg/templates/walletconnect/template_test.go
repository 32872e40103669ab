package walletconnect_test

import (
	"testing"

	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/templates/walletconnect"
	"github.com/stretchr/testify/assert"
)

func TestTemplate_CustomRpcFollowsToggle(t *testing.T) {
	t.Parallel()

	template := walletconnect.Template()

	errs := schema.Validate(template, schema.Config{"projectId": "abc123"})
	assert.NotContains(t, errs, "customRpcUrl")

	errs = schema.Validate(template, schema.Config{
		"projectId":    "abc123",
		"useCustomRpc": true,
	})
	assert.Equal(t, "Custom RPC URL is required", errs["customRpcUrl"])

	errs = schema.Validate(template, schema.Config{
		"projectId":    "abc123",
		"useCustomRpc": true,
		"customRpcUrl": "not a url",
	})
	assert.Equal(t, "Custom RPC URL must be a valid URL", errs["customRpcUrl"])
}

func TestTemplate_Defaults(t *testing.T) {
	t.Parallel()

	defaults := schema.Defaults(walletconnect.Template())

	assert.Equal(t, []string{"1"}, defaults["supportedChains"])
	assert.Equal(t, "#3b82f6", defaults["themeColor"])
	assert.Equal(t, false, defaults["autoConnect"])
}
