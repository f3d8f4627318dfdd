package cli

import (
	"errors"

	"go-medical-scheduling/config"

	"github.com/spf13/cobra"
)

func serveCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}

// errSharedReconcile guards reconcile runs that a process-local lock cannot
// serialize against a running server.
var errSharedReconcile = errors.New("reconcile with LOCK_DRIVER=local may race a running server; stop the server and pass --offline, or use LOCK_DRIVER=redis")

func reconcileCmd(newApp appFactory) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Repair writes interrupted by a crash",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Config.Lock.Driver == config.LockLocal && !offline {
				return errSharedReconcile
			}

			result, err := app.Usecases.Appointments.Reconcile(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "confirm no server shares the storage (required with LOCK_DRIVER=local)")
	return cmd
}
