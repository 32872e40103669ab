// Package walletconnect defines the wallet connector panel template.
package walletconnect

import "github.com/dexforge/dexforge/pkg/schema"

const Type = "walletconnect"

func Template() *schema.Template {
	return &schema.Template{
		Type:        Type,
		Name:        "Wallet Connect",
		Description: "Wallet connection button with multi-chain support",
		Category:    "wallet",
		Icon:        "wallet",
		Fields: []schema.Field{
			{
				Key:         "projectId",
				Kind:        schema.KindText,
				Label:       "WalletConnect Project ID",
				Description: "Project identifier from the WalletConnect dashboard",
				Required:    true,
			},
			{
				Key:     "supportedChains",
				Kind:    schema.KindMultiSelect,
				Label:   "Supported Networks",
				Default: []string{"1"},
				Options: []schema.Option{
					{Label: "Ethereum", Value: "1"},
					{Label: "Arbitrum", Value: "42161"},
					{Label: "Optimism", Value: "10"},
					{Label: "Polygon", Value: "137"},
					{Label: "Base", Value: "8453"},
				},
			},
			{
				Key:     "themeColor",
				Kind:    schema.KindColor,
				Label:   "Theme Color",
				Default: "#3b82f6",
			},
			{
				Key:   "autoConnect",
				Kind:  schema.KindBoolean,
				Label: "Auto Connect",
			},
			{
				Key:   "useCustomRpc",
				Kind:  schema.KindBoolean,
				Label: "Use Custom RPC",
			},
			{
				Key:         "customRpcUrl",
				Kind:        schema.KindURL,
				Label:       "Custom RPC URL",
				Placeholder: "https://rpc.example.com",
				Required:    true,
				VisibleWhen: func(cfg schema.Config) bool {
					return cfg["useCustomRpc"] == true
				},
			},
		},
		Outputs: []schema.Port{
			{Name: "account", Type: "account", Description: "Connected wallet account"},
			{Name: "signer", Type: "execution", Description: "Transaction signer handle"},
		},
	}
}
