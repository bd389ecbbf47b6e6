package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jask/onboard/core"
	"github.com/jask/onboard/internal/catalog"
	"github.com/jask/onboard/internal/config"
	"github.com/jask/onboard/internal/logger"
	"github.com/jask/onboard/internal/onboarding"
	"github.com/jask/onboard/internal/prefs"
)

const appTitle = "onboard"

type rootOptions struct {
	configPath string
	force      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "onboard",
		Short:        "Walk through the onboarding carousel",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboarding(opts, cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $ONBOARD_CONFIG or the user config dir)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Show onboarding even if it was already completed")

	cmd.AddCommand(
		newConfigCmd(opts),
		newCatalogCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

func runOnboarding(opts *rootOptions, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	lggr, err := logger.New(logger.Config{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return err
	}
	defer func() { _ = lggr.Sync() }()
	session := uuid.NewString()
	lggr = lggr.With("session", session)

	store, err := prefs.NewStore(cfg.Prefs.Dir)
	if err != nil {
		return err
	}
	marker, err := store.Load()
	if err != nil {
		return err
	}
	if marker.Completed && !opts.force {
		fmt.Fprintf(out, "Onboarding was completed on %s. Run with --force to see it again.\n",
			marker.CompletedAt.Local().Format(time.DateTime))
		return nil
	}

	steps, err := catalog.Load(cfg.UI.CatalogPath)
	if err != nil {
		return err
	}

	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	screen, err := onboarding.New(onboarding.Options{
		Catalog: steps,
		Config:  cfg,
		Keys:    keys,
		Logger:  lggr,
	})
	if err != nil {
		return err
	}
	model := core.NewModel(appTitle, keys, screen, func(msg core.OnboardingCompleteMsg) error {
		return store.MarkCompleted(session, msg.At)
	})

	lggr.Infow("onboarding started", "steps", steps.Len(), "catalog", cfg.UI.CatalogPath)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if err := config.Watch(opts.configPath,
		func(c config.Config) { p.Send(core.ConfigReloadedMsg{Config: c}) },
		func(err error) {
			lggr.Warnw("config reload failed", "err", err)
			p.Send(core.StatusMsg{Text: "config reload failed: " + err.Error(), IsErr: true})
		},
	); err != nil {
		lggr.Debugw("config watch disabled", "err", err)
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	m, ok := final.(core.Model)
	if !ok {
		return errors.New("unexpected final model")
	}
	if err := m.Err(); err != nil {
		return fmt.Errorf("save onboarding state: %w", err)
	}
	if m.Completed() {
		lggr.Infow("onboarding finished")
		fmt.Fprintln(out, "You're all set.")
	}
	return nil
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget that onboarding was completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			store, err := prefs.NewStore(cfg.Prefs.Dir)
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding will show on next run.")
			return nil
		},
	}
}
