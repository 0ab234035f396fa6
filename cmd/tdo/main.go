// Package main implements the tdo CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/internal/config"
	"github.com/eklerner/tdo/internal/paths"
	"github.com/eklerner/tdo/internal/state"
	"github.com/eklerner/tdo/session"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tdo",
	Short:         "tdo - a todo client for the command line",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// app bundles the wired-up client stack: config, persisted session, and the
// API client with its unauthorized hook pointed at the session store.
type app struct {
	config   *config.Config
	client   *api.Client
	sessions *session.Store
}

func openApp() (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		return nil, err
	}

	store := state.NewStore(stateDir)
	sessions, err := session.Open(store)
	if err != nil {
		return nil, err
	}

	// Remember the resolved server URL alongside the token; a stored token
	// is only meaningful against the server that issued it.
	if err := store.Update(func(st *state.State) error {
		st.ServerURL = cfg.ServerURL()
		return nil
	}); err != nil {
		return nil, fmt.Errorf("record server url: %w", err)
	}

	client := api.NewClient(cfg.ServerURL(), sessions)
	client.OnUnauthorized(sessions.Clear)
	sessions.SetClient(client)

	return &app{config: cfg, client: client, sessions: sessions}, nil
}

func (a *app) requireSession() error {
	if !a.sessions.IsAuthenticated() {
		return fmt.Errorf("not logged in; run 'tdo login' first")
	}
	return nil
}
