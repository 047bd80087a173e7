package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/staccato/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a configuration file",
				Description: `Validates a staccato configuration file for syntax errors and invalid values.

Examples:
  staccato config validate                       # Validates default config locations
  staccato -c staccato.toml config validate      # Validates specific file`,
				Action: runConfigValidate,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Description: `Shows the merged configuration from defaults and config file.

Examples:
  staccato config show                    # Show effective config
  staccato -c staccato.toml config show   # Show config from specific file`,
				Action: runConfigShow,
			},
		},
	}
}

func loadOptions(c *cli.Context) []config.LoadOption {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}
	return opts
}

func runConfigValidate(c *cli.Context) error {
	w := c.App.Writer

	result, err := config.LoadConfig(loadOptions(c)...)
	if err != nil {
		color.New(color.FgRed).Fprintln(w, "Configuration validation failed:")
		fmt.Fprintf(w, "  - %s\n", err)
		return err
	}

	if result.Source != "" {
		color.New(color.FgGreen).Fprintf(w, "Configuration valid: %s\n", result.Source)
	} else {
		color.New(color.FgYellow).Fprintln(w, "No config file found. Default configuration is valid.")
	}
	return nil
}

func runConfigShow(c *cli.Context) error {
	w := c.App.Writer

	result, err := config.LoadConfig(loadOptions(c)...)
	if err != nil {
		return err
	}

	if result.Source != "" {
		fmt.Fprintf(w, "# Configuration from: %s\n\n", result.Source)
	} else {
		fmt.Fprintln(w, "# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(result.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(w, string(content))

	return nil
}
