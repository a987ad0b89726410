package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"vault_backend/internal/app"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vault",
		Short:         "Vault loyalty backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.NewApp().Run(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Seed wheel config, announcement and admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.NewApp().Seed(cmd.Context())
		},
	})

	return root
}
