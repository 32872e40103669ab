// Package registry holds the node templates available to the builder palette
// and answers config seeding and validation requests against them.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dexforge/dexforge/pkg/schema"
)

// Registry is the template catalog. Templates are registered at process
// start and never mutated afterwards; lookups are read-only.
type Registry struct {
	logger    *slog.Logger
	templates map[string]*schema.Template
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		templates: make(map[string]*schema.Template),
	}
}

// Register adds a template to the catalog. Registering the same type twice
// is a programming error and fails loudly.
func (r *Registry) Register(t *schema.Template) error {
	if t.Type == "" {
		return fmt.Errorf("template has no type key")
	}

	if _, exists := r.templates[t.Type]; exists {
		return fmt.Errorf("template type '%s' already registered", t.Type)
	}

	r.templates[t.Type] = t
	r.logger.Debug("Registered node template", slog.String("type", t.Type))

	return nil
}

// Get returns the template for the given type key.
func (r *Registry) Get(templateType string) (*schema.Template, error) {
	t, ok := r.templates[templateType]
	if !ok {
		return nil, fmt.Errorf("template type '%s' not registered", templateType)
	}

	return t, nil
}

// Has reports whether a template type is registered.
func (r *Registry) Has(templateType string) bool {
	_, ok := r.templates[templateType]

	return ok
}

// List returns all registered templates, ordered by type key.
func (r *Registry) List() []*schema.Template {
	list := make([]*schema.Template, 0, len(r.templates))
	for _, t := range r.templates {
		list = append(list, t)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Type < list[j].Type })

	return list
}

// HealthCheck reports whether the catalog is usable.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.templates) == 0 {
		return "No templates registered", false
	}

	return fmt.Sprintf("%d templates registered", len(r.templates)), true
}

// SeedConfig builds the initial config for a freshly placed node: every
// declared field resolved to its default.
func (r *Registry) SeedConfig(templateType string) (schema.Config, error) {
	t, err := r.Get(templateType)
	if err != nil {
		return nil, err
	}

	return schema.Defaults(t), nil
}

// ValidateConfig validates a candidate config against a registered template.
func (r *Registry) ValidateConfig(templateType string, cfg schema.Config) (schema.Errors, error) {
	t, err := r.Get(templateType)
	if err != nil {
		return nil, err
	}

	return schema.Validate(t, cfg), nil
}
