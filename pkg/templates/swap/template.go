// Package swap defines the 1inch swap panel template.
package swap

import (
	"errors"

	"github.com/dexforge/dexforge/pkg/schema"
)

const Type = "swap"

// Template returns the swap component template. Fusion settings only apply
// when fusion mode is on, so they hide (and skip validation) otherwise.
func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "1inch Swap",
		Description: "Token swap widget backed by the 1inch aggregation router",
		Category:    "defi",
		Icon:        "swap-horizontal",
		Fields: []schema.Field{
			{
				Key:         "apiKey",
				Kind:        schema.KindPassword,
				Label:       "1inch API Key",
				Description: "Developer portal API key used for quote and swap calls",
				Required:    true,
			},
			{
				Key:     "chain",
				Kind:    schema.KindSelect,
				Label:   "Network",
				Default: "1",
				Options: []schema.Option{
					{Label: "Ethereum", Value: "1"},
					{Label: "Arbitrum", Value: "42161"},
					{Label: "Polygon", Value: "137"},
					{Label: "Base", Value: "8453"},
				},
			},
			{
				Key:         "slippage",
				Kind:        schema.KindSlider,
				Label:       "Slippage Tolerance",
				Description: "Maximum acceptable price movement, in percent",
				Min:         schema.FloatPtr(0.1),
				Max:         schema.FloatPtr(50),
				Step:        schema.FloatPtr(0.1),
			},
			{
				Key:         "fixedAmount",
				Kind:        schema.KindBoolean,
				Label:       "Fixed Amount",
				Description: "Sell a preset amount instead of asking in the widget",
			},
			{
				Key:   "amount",
				Kind:  schema.KindNumber,
				Label: "Amount",
				Rules: &schema.Rules{Custom: positiveAmount},
				VisibleWhen: func(cfg schema.Config) bool {
					return cfg["fixedAmount"] == true
				},
			},
			{
				Key:     "gasPreset",
				Kind:    schema.KindSelect,
				Label:   "Gas Preset",
				Default: "standard",
				Options: []schema.Option{
					{Label: "Slow", Value: "slow"},
					{Label: "Standard", Value: "standard"},
					{Label: "Fast", Value: "fast"},
				},
			},
			{
				Key:   "enableFusion",
				Kind:  schema.KindBoolean,
				Label: "Enable Fusion Mode",
			},
			{
				Key:         "fusionTimeout",
				Kind:        schema.KindNumber,
				Label:       "Fusion Timeout",
				Description: "Seconds to wait for a Fusion resolver before falling back",
				Default:     float64(180),
				Min:         schema.FloatPtr(1),
				Max:         schema.FloatPtr(600),
				VisibleWhen: func(cfg schema.Config) bool {
					return cfg["enableFusion"] == true
				},
			},
			{
				Key:         "referrerFee",
				Kind:        schema.KindNumber,
				Label:       "Referrer Fee",
				Description: "Fee in percent collected for the referrer address",
				Min:         schema.FloatPtr(0),
				Max:         schema.FloatPtr(3),
			},
			{
				Key:      "referrerAddress",
				Kind:     schema.KindText,
				Label:    "Referrer Address",
				Required: true,
				Rules: &schema.Rules{
					Pattern:        "^0x[0-9a-fA-F]{40}$",
					PatternMessage: "Referrer Address must be a valid wallet address",
				},
				VisibleWhen: feeConfigured,
			},
		},
		Inputs: []schema.Port{
			{Name: "tokenIn", Type: "token", Required: true, Description: "Token to sell"},
			{Name: "amount", Type: "amount", Description: "Amount source, e.g. an input widget"},
		},
		Outputs: []schema.Port{
			{Name: "tokenOut", Type: "token", Description: "Token received"},
			{Name: "execution", Type: "execution", Description: "Swap transaction trigger"},
		},
	}
}

// feeConfigured shows the referrer address field once a non-zero fee is set.
func feeConfigured(cfg schema.Config) bool {
	fee, ok := cfg["referrerFee"].(float64)

	return ok && fee > 0
}

func positiveAmount(value any, _ schema.Config) error {
	amount, ok := value.(float64)
	if !ok || amount <= 0 {
		return errors.New("Amount must be greater than 0")
	}

	return nil
}
