package registry_test

import (
	"log/slog"
	"testing"

	"github.com/dexforge/dexforge/pkg/registry"
	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/templates/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.NewRegistry(slog.Default())
	require.NoError(t, registry.RegisterDefaultTemplates(r))

	return r
}

func TestRegisterDefaultTemplates(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	list := r.List()
	require.Len(t, list, 7)

	// List is ordered by type key.
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Type, list[i].Type)
	}

	assert.True(t, r.Has(swap.Type))
	assert.False(t, r.Has("unknown"))
}

func TestRegister_DuplicateType(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	err := r.Register(swap.Template())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestSeedConfig(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	cfg, err := r.SeedConfig(swap.Type)
	require.NoError(t, err)

	template, err := r.Get(swap.Type)
	require.NoError(t, err)

	// Seeding is total: every declared field gets a value.
	for _, key := range template.FieldKeys() {
		assert.Contains(t, cfg, key)
	}

	_, err = r.SeedConfig("unknown")
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)

	errs, err := r.ValidateConfig(swap.Type, schema.Config{})
	require.NoError(t, err)
	assert.Equal(t, "1inch API Key is required", errs["apiKey"])

	_, err = r.ValidateConfig("unknown", schema.Config{})
	require.Error(t, err)
}
