// Package limitorder defines the limit order panel template.
package limitorder

import (
	"errors"

	"github.com/dexforge/dexforge/pkg/schema"
)

const Type = "limitorder"

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Limit Order",
		Description: "Place a resting order at a target price",
		Category:    "defi",
		Icon:        "target",
		Fields: []schema.Field{
			{
				Key:      "price",
				Kind:     schema.KindNumber,
				Label:    "Limit Price",
				Required: true,
				Rules: &schema.Rules{
					Custom: positivePrice,
				},
			},
			{
				Key:         "expiryDate",
				Kind:        schema.KindDate,
				Label:       "Expiry Date",
				Description: "Order is cancelled after this day",
			},
			{
				Key:     "expiryTime",
				Kind:    schema.KindTime,
				Label:   "Expiry Time",
				Default: "23:59",
			},
			{
				Key:   "partialFill",
				Kind:  schema.KindBoolean,
				Label: "Allow Partial Fill",
			},
			{
				Key:         "notes",
				Kind:        schema.KindTextarea,
				Label:       "Notes",
				Description: "Free-form note stored with the order",
				Rules: &schema.Rules{
					MaxLength: schema.IntPtr(280),
				},
			},
		},
		Inputs: []schema.Port{
			{Name: "tokenIn", Type: "token", Required: true, Description: "Token to sell"},
			{Name: "tokenOut", Type: "token", Required: true, Description: "Token to buy"},
			{Name: "amount", Type: "amount", Description: "Amount to sell"},
		},
		Outputs: []schema.Port{
			{Name: "order", Type: "execution", Description: "Order placement trigger"},
		},
	}
}

func positivePrice(value any, _ schema.Config) error {
	price, ok := value.(float64)
	if !ok || price <= 0 {
		return errors.New("Limit Price must be greater than 0")
	}

	return nil
}
