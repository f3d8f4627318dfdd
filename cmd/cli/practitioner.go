package cli

import (
	"context"
	"time"

	"go-medical-scheduling/cmd/bootstrap"
	"go-medical-scheduling/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func practitionerCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "practitioner",
		Aliases: []string{"doctor"},
		Short:   "Manage practitioners and their slots",
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a practitioner",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			specialty, _ := cmd.Flags().GetString("specialty")
			rawSlots, _ := cmd.Flags().GetStringArray("slot")

			req := &dto.CreatePractitionerRequest{Name: name, Specialty: specialty}
			for _, raw := range rawSlots {
				at, err := parseTime(raw)
				if err != nil {
					return err
				}
				req.Slots = append(req.Slots, at)
			}

			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				practitioner, err := app.Usecases.Practitioners.Register(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), practitioner)
			})
		},
	}
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("specialty", "", "Specialty")
	registerCmd.Flags().StringArray("slot", nil, "Open slot (RFC3339); repeatable, defaults to the slot policy")
	cmd.AddCommand(registerCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a practitioner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				practitioner, err := app.Usecases.Practitioners.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), practitioner)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List practitioners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				practitioners, err := app.Usecases.Practitioners.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), practitioners)
			})
		},
	})

	cmd.AddCommand(slotCmd(newApp, "open-slot <id> <time>", "Publish an open slot",
		func(ctx context.Context, app *bootstrap.App, id string, at time.Time) (interface{}, error) {
			return app.Usecases.Appointments.OpenSlot(ctx, id, at)
		}))
	cmd.AddCommand(slotCmd(newApp, "close-slot <id> <time>", "Withdraw an open slot",
		func(ctx context.Context, app *bootstrap.App, id string, at time.Time) (interface{}, error) {
			removed, err := app.Usecases.Appointments.CloseSlot(ctx, id, at)
			return map[string]interface{}{"time": at, "removed": removed}, err
		}))

	return cmd
}

func slotCmd(newApp appFactory, use, short string, fn func(ctx context.Context, app *bootstrap.App, id string, at time.Time) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseTime(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				out, err := fn(ctx, app, args[0], at)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}
