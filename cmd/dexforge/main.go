// Package main provides the DexForge developer CLI for inspecting node
// templates and checking configs outside the API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/dexforge/dexforge/pkg/cmd"
	"github.com/dexforge/dexforge/pkg/log"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/schema"
	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "dexforge",
		Usage:                 "Inspect node templates and validate configs",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			templatesCommand(),
			validateCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"t"},
		Usage:   "List registered node templates",
		Commands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "Print the JSON Schema of one template",
				ArgsUsage: "<type>",
				Action: func(ctx context.Context, command *cli.Command) error {
					log.Setup(command.String("log-level"))

					templateType := command.Args().First()
					if templateType == "" {
						return fmt.Errorf("template type argument is required")
					}

					template, err := cmd.NewRegistry(log.WithModule("cli")).Get(templateType)
					if err != nil {
						return err
					}

					return printJSON(JSONSchemaExport{
						Schema:   schema.JSONSchema(template),
						Defaults: schema.Defaults(template),
					})
				},
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			registry := cmd.NewRegistry(log.WithModule("cli"))

			for _, t := range registry.List() {
				fmt.Printf("%-16s %-24s %s\n", t.Type, t.Name, t.Description)
			}

			return nil
		},
	}
}

// JSONSchemaExport pairs a template's static schema with its resolved
// defaults, the two things an external form renderer needs.
type JSONSchemaExport struct {
	Schema   map[string]any `json:"schema"`
	Defaults schema.Config  `json:"defaults"`
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate every node config of a flow document",
		ArgsUsage: "<flow.json>",
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			flowPath := command.Args().First()
			if flowPath == "" {
				return fmt.Errorf("usage: dexforge validate <flow.json>")
			}

			data, err := os.ReadFile(flowPath)
			if err != nil {
				return fmt.Errorf("failed to read flow file: %w", err)
			}

			var flow models.Flow
			if err := json.Unmarshal(data, &flow); err != nil {
				return fmt.Errorf("failed to parse flow file: %w", err)
			}

			registry := cmd.NewRegistry(log.WithModule("cli"))
			invalid := 0

			for _, node := range flow.Nodes {
				template, err := registry.Get(node.Type)
				if err != nil {
					fmt.Printf("%s (%s): unknown component type\n", node.ID, node.Type)

					invalid++

					continue
				}

				cfg := schema.Merge(template, schema.Config(node.Config))

				fieldErrors := schema.Validate(template, cfg)
				if len(fieldErrors) == 0 {
					// Cross-check against the exported JSON Schema as well,
					// so the static export stays honest about what the
					// validator accepts.
					if err := schema.ValidateDocument(template, cfg); err != nil {
						fmt.Printf("%s (%s): %v\n", node.ID, node.Type, err)

						invalid++
					}

					continue
				}

				invalid++

				keys := make([]string, 0, len(fieldErrors))
				for key := range fieldErrors {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				for _, key := range keys {
					fmt.Printf("%s (%s) %s: %s\n", node.ID, node.Type, key, fieldErrors[key])
				}
			}

			if invalid > 0 {
				return fmt.Errorf("flow has %d invalid node(s)", invalid)
			}

			fmt.Printf("Flow is valid (%d nodes)\n", len(flow.Nodes))

			return nil
		},
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
