// Package bridge defines the cross-chain bridge panel template.
package bridge

import (
	"errors"

	"github.com/dexforge/dexforge/pkg/schema"
)

const Type = "bridge"

var chainOptions = []schema.Option{
	{Label: "Ethereum", Value: "1"},
	{Label: "Arbitrum", Value: "42161"},
	{Label: "Optimism", Value: "10"},
	{Label: "Polygon", Value: "137"},
	{Label: "Base", Value: "8453"},
}

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Bridge",
		Description: "Move tokens between networks",
		Category:    "defi",
		Icon:        "bridge",
		Fields: []schema.Field{
			{
				Key:     "fromChain",
				Kind:    schema.KindSelect,
				Label:   "Source Network",
				Default: "1",
				Options: chainOptions,
			},
			{
				Key:     "toChain",
				Kind:    schema.KindSelect,
				Label:   "Destination Network",
				Default: "42161",
				Options: chainOptions,
				Rules: &schema.Rules{
					Custom: distinctChains,
				},
			},
			{
				Key:         "recipient",
				Kind:        schema.KindText,
				Label:       "Recipient",
				Description: "Destination address; leave empty to bridge to the connected wallet",
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Recipient must be a valid wallet address",
				},
			},
			{
				Key:         "slippage",
				Kind:        schema.KindSlider,
				Label:       "Slippage Tolerance",
				Default:     float64(0.5),
				Min:         schema.FloatPtr(0.1),
				Max:         schema.FloatPtr(10),
				Step:        schema.FloatPtr(0.1),
			},
		},
		Inputs: []schema.Port{
			{Name: "token", Type: "token", Required: true, Description: "Token to bridge"},
			{Name: "amount", Type: "amount", Description: "Amount to bridge"},
		},
		Outputs: []schema.Port{
			{Name: "execution", Type: "execution", Description: "Bridge transaction trigger"},
		},
	}
}

// distinctChains rejects configs that bridge a token onto its own network.
func distinctChains(value any, cfg schema.Config) error {
	if value == cfg["fromChain"] {
		return errors.New("Destination Network must differ from the source network")
	}

	return nil
}
