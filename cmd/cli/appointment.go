package cli

import (
	"context"
	"time"

	"go-medical-scheduling/cmd/bootstrap"
	"go-medical-scheduling/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func appointmentCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Book and manage appointments",
	}

	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book an open slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			practitionerID, _ := cmd.Flags().GetString("practitioner")
			rawAt, _ := cmd.Flags().GetString("at")
			reason, _ := cmd.Flags().GetString("reason")

			at, err := parseTime(rawAt)
			if err != nil {
				return err
			}
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				appointment, err := app.Usecases.Appointments.Book(ctx, &dto.BookAppointmentRequest{
					PatientID: patientID, PractitionerID: practitionerID, ScheduledAt: at, Reason: reason,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), appointment)
			})
		},
	}
	bookCmd.Flags().String("patient", "", "Patient ID")
	bookCmd.Flags().String("practitioner", "", "Practitioner ID")
	bookCmd.Flags().String("at", "", "Slot start (RFC3339)")
	bookCmd.Flags().String("reason", "", "Visit reason")
	cmd.AddCommand(bookCmd)

	cmd.AddCommand(idCmd(newApp, "cancel <id>", "Cancel an appointment and release its slot",
		func(ctx context.Context, app *bootstrap.App, id string) (interface{}, error) {
			return app.Usecases.Appointments.Cancel(ctx, id)
		}))
	cmd.AddCommand(idCmd(newApp, "complete <id>", "Mark an appointment as attended",
		func(ctx context.Context, app *bootstrap.App, id string) (interface{}, error) {
			return app.Usecases.Appointments.Complete(ctx, id)
		}))
	cmd.AddCommand(idCmd(newApp, "get <id>", "Show an appointment",
		func(ctx context.Context, app *bootstrap.App, id string) (interface{}, error) {
			return app.Usecases.Appointments.Get(ctx, id)
		}))

	cmd.AddCommand(&cobra.Command{
		Use:   "reschedule <id> <time>",
		Short: "Move an appointment to another open slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseTime(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				appointment, err := app.Usecases.Appointments.Reschedule(ctx, args[0], at)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), appointment)
			})
		},
	})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments, optionally by patient, practitioner or date",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			practitionerID, _ := cmd.Flags().GetString("practitioner")
			rawDate, _ := cmd.Flags().GetString("date")

			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				uc := app.Usecases.Appointments
				var (
					list *dto.AppointmentListResponse
					err  error
				)
				switch {
				case patientID != "":
					list, err = uc.ListByPatient(ctx, patientID)
				case practitionerID != "":
					list, err = uc.ListByPractitioner(ctx, practitionerID)
				case rawDate != "":
					loc, locErr := app.Config.Location()
					if locErr != nil {
						return locErr
					}
					day, parseErr := time.ParseInLocation(time.DateOnly, rawDate, loc)
					if parseErr != nil {
						return parseErr
					}
					list, err = uc.ListByDate(ctx, day)
				default:
					list, err = uc.ListAll(ctx)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}
	listCmd.Flags().String("patient", "", "Filter by patient ID")
	listCmd.Flags().String("practitioner", "", "Filter by practitioner ID")
	listCmd.Flags().String("date", "", "Filter by calendar day (YYYY-MM-DD)")
	cmd.AddCommand(listCmd)

	return cmd
}

func idCmd(newApp appFactory, use, short string, fn func(ctx context.Context, app *bootstrap.App, id string) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				out, err := fn(ctx, app, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}
