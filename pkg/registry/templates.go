package registry

import (
	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/templates/bridge"
	"github.com/dexforge/dexforge/pkg/templates/limitorder"
	"github.com/dexforge/dexforge/pkg/templates/portfolio"
	"github.com/dexforge/dexforge/pkg/templates/quote"
	"github.com/dexforge/dexforge/pkg/templates/swap"
	"github.com/dexforge/dexforge/pkg/templates/tokenselector"
	"github.com/dexforge/dexforge/pkg/templates/walletconnect"
)

// RegisterDefaultTemplates loads the built-in component catalog into the
// registry.
func RegisterDefaultTemplates(r *Registry) error {
	builtins := []*schema.Template{
		swap.Template(),
		quote.Template(),
		walletconnect.Template(),
		bridge.Template(),
		tokenselector.Template(),
		limitorder.Template(),
		portfolio.Template(),
	}

	for _, t := range builtins {
		if err := r.Register(t); err != nil {
			return err
		}
	}

	return nil
}
