// Package portfolio defines the portfolio tracker panel template.
package portfolio

import "github.com/dexforge/dexforge/pkg/schema"

const Type = "portfolio"

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Portfolio",
		Description: "Token balances and value across networks",
		Category:    "data",
		Icon:        "pie-chart",
		Fields: []schema.Field{
			{
				Key:      "address",
				Kind:     schema.KindText,
				Label:    "Wallet Address",
				Required: true,
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Wallet Address must be a valid wallet address",
				},
			},
			{
				Key:     "chains",
				Kind:    schema.KindMultiSelect,
				Label:   "Networks",
				Default: []string{"1", "42161"},
				Options: []schema.Option{
					{Label: "Ethereum", Value: "1"},
					{Label: "Arbitrum", Value: "42161"},
					{Label: "Optimism", Value: "10"},
					{Label: "Polygon", Value: "137"},
					{Label: "Base", Value: "8453"},
				},
			},
			{
				Key:     "hideDust",
				Kind:    schema.KindBoolean,
				Label:   "Hide Dust",
				Default: true,
			},
			{
				Key:         "dustThreshold",
				Kind:        schema.KindNumber,
				Label:       "Dust Threshold",
				Description: "Positions below this USD value are hidden",
				Default:     float64(1),
				Min:         schema.FloatPtr(0),
				VisibleWhen: func(cfg schema.Config) bool {
					return cfg["hideDust"] == true
				},
			},
			{
				Key:         "customQuery",
				Kind:        schema.KindCode,
				Label:       "Custom Query",
				Description: "Optional GraphQL query to extend the position feed",
			},
			{
				Key:         "alertEmail",
				Kind:        schema.KindEmail,
				Label:       "Alert Email",
				Description: "Receives large balance change notifications",
			},
		},
		Outputs: []schema.Port{
			{Name: "positions", Type: "data", Description: "Position list"},
			{Name: "totalValue", Type: "amount", Description: "Total portfolio value"},
		},
	}
}
