package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/onboard/internal/catalog"
	"github.com/jask/onboard/internal/config"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Onboarding step catalog commands",
	}
	cmd.AddCommand(newCatalogShowCmd(opts), newCatalogInitCmd(opts))
	return cmd
}

func newCatalogShowCmd(opts *rootOptions) *cobra.Command {
	var asTOML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the steps that onboarding will show",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			steps, err := catalog.Load(cfg.UI.CatalogPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asTOML {
				data, err := steps.Encode()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			for i, s := range steps.Steps() {
				fmt.Fprintf(out, "%d. %s: %s\n", i+1, s.Title, s.Heading)
				if s.ShowChecklist {
					for _, item := range s.Checklist {
						fmt.Fprintf(out, "   - %s\n", item)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print as a TOML catalog document")
	return cmd
}

func newCatalogInitCmd(opts *rootOptions) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in catalog as a starting point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.Dir(), "steps.toml")
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !overwrite {
				return fmt.Errorf("%s already exists (use --overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("mkdir catalog dir: %w", err)
			}
			if err := os.WriteFile(path, catalog.DefaultTOML(), 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\nset ui.catalog_path to use it\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
