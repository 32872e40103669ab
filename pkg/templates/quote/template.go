// Package quote defines the live price quote panel template.
package quote

import "github.com/dexforge/dexforge/pkg/schema"

const Type = "quote"

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Price Quote",
		Description: "Live exchange rate display for a token pair",
		Category:    "defi",
		Icon:        "trending-up",
		Fields: []schema.Field{
			{
				Key:      "baseToken",
				Kind:     schema.KindText,
				Label:    "Base Token",
				Required: true,
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Base Token must be a token contract address",
				},
			},
			{
				Key:      "quoteToken",
				Kind:     schema.KindText,
				Label:    "Quote Token",
				Required: true,
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Quote Token must be a token contract address",
				},
			},
			{
				Key:         "refreshInterval",
				Kind:        schema.KindSlider,
				Label:       "Refresh Interval",
				Description: "Seconds between quote refreshes",
				Default:     float64(10),
				Min:         schema.FloatPtr(1),
				Max:         schema.FloatPtr(300),
				Step:        schema.FloatPtr(1),
			},
			{
				Key:     "decimals",
				Kind:    schema.KindNumber,
				Label:   "Display Decimals",
				Default: float64(4),
				Min:     schema.FloatPtr(0),
				Max:     schema.FloatPtr(18),
			},
			{
				Key:   "showInverse",
				Kind:  schema.KindBoolean,
				Label: "Show Inverse Rate",
			},
			{
				Key:     "accentColor",
				Kind:    schema.KindColor,
				Label:   "Accent Color",
				Default: "#2f6ff7",
			},
		},
		Inputs: []schema.Port{
			{Name: "pair", Type: "token", Description: "Token pair override"},
		},
		Outputs: []schema.Port{
			{Name: "rate", Type: "amount", Description: "Latest exchange rate"},
		},
	}
}
