// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/dexforge/dexforge/pkg/registry"
)

func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	if err := registry.RegisterDefaultTemplates(reg); err != nil {
		panic(err)
	}

	return reg
}
