// Package tokenselector defines the token picker panel template.
package tokenselector

import "github.com/dexforge/dexforge/pkg/schema"

const Type = "tokenselector"

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Token Selector",
		Description: "Searchable token picker backed by a token list",
		Category:    "input",
		Icon:        "coins",
		Fields: []schema.Field{
			{
				Key:     "source",
				Kind:    schema.KindSelect,
				Label:   "Token List Source",
				Default: "1inch",
				Options: []schema.Option{
					{Label: "1inch", Value: "1inch"},
					{Label: "CoinGecko", Value: "coingecko"},
					{Label: "Custom URL", Value: "custom"},
				},
			},
			{
				Key:         "customListUrl",
				Kind:        schema.KindURL,
				Label:       "Custom List URL",
				Placeholder: "https://tokens.example.com/list.json",
				Required:    true,
				VisibleWhen: func(cfg schema.Config) bool {
					return cfg["source"] == "custom"
				},
			},
			{
				Key:         "pinnedTokens",
				Kind:        schema.KindArray,
				Label:       "Pinned Tokens",
				Description: "Token addresses shown at the top of the picker",
				Rules: &schema.Rules{
					MaxLength: schema.IntPtr(8),
				},
			},
			{
				Key:         "defaultToken",
				Kind:        schema.KindText,
				Label:       "Default Token",
				Description: "Token address preselected when the picker mounts",
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Default Token must be a token contract address",
				},
			},
			{
				Key:   "allowUnlisted",
				Kind:  schema.KindBoolean,
				Label: "Allow Unlisted Tokens",
			},
		},
		Outputs: []schema.Port{
			{Name: "token", Type: "token", Description: "Selected token"},
		},
	}
}
