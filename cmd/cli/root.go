// Package cli holds the scheduler command tree. Every command wires the
// application through bootstrap and calls the same usecases as the HTTP API.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go-medical-scheduling/cmd/bootstrap"

	"github.com/spf13/cobra"
)

// appFactory builds the application; tests replace it
type appFactory func(ctx context.Context) (*bootstrap.App, error)

func NewRootCmd(newApp appFactory) *cobra.Command {
	if newApp == nil {
		newApp = bootstrap.New
	}

	rootCmd := &cobra.Command{
		Use:           "scheduler",
		Short:         "Medical appointment scheduling service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd(newApp))
	rootCmd.AddCommand(reconcileCmd(newApp))
	rootCmd.AddCommand(seedCmd(newApp))
	rootCmd.AddCommand(patientCmd(newApp))
	rootCmd.AddCommand(practitionerCmd(newApp))
	rootCmd.AddCommand(appointmentCmd(newApp))
	rootCmd.AddCommand(recordCmd(newApp))

	return rootCmd
}

func Execute() error {
	return NewRootCmd(nil).Execute()
}

// withApp runs fn against a freshly wired application and closes it after.
// Pending intents are left to the server or to the reconcile command.
func withApp(cmd *cobra.Command, newApp appFactory, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want RFC3339 (e.g. 2025-11-01T10:00:00Z)", raw)
	}
	return t, nil
}
