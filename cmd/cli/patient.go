package cli

import (
	"context"

	"go-medical-scheduling/cmd/bootstrap"
	"go-medical-scheduling/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func patientCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patients",
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := patientRequestFromFlags(cmd)
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				patient, err := app.Usecases.Patients.Register(ctx, &dto.CreatePatientRequest{
					Name: req.Name, Age: req.Age, Gender: req.Gender, Contact: req.Contact,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), patient)
			})
		},
	}
	addPatientFlags(registerCmd)
	cmd.AddCommand(registerCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a patient's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := patientRequestFromFlags(cmd)
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				patient, err := app.Usecases.Patients.Update(ctx, args[0], &req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), patient)
			})
		},
	}
	addPatientFlags(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				patient, err := app.Usecases.Patients.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), patient)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				patients, err := app.Usecases.Patients.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), patients)
			})
		},
	})

	return cmd
}

func addPatientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().Int("age", 0, "Age in years")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("contact", "", "10-digit phone number")
}

func patientRequestFromFlags(cmd *cobra.Command) dto.UpdatePatientRequest {
	name, _ := cmd.Flags().GetString("name")
	age, _ := cmd.Flags().GetInt("age")
	gender, _ := cmd.Flags().GetString("gender")
	contact, _ := cmd.Flags().GetString("contact")
	return dto.UpdatePatientRequest{Name: name, Age: age, Gender: gender, Contact: contact}
}
