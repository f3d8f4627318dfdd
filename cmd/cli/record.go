package cli

import (
	"context"

	"go-medical-scheduling/cmd/bootstrap"
	"go-medical-scheduling/internal/delivery/dto"

	"github.com/spf13/cobra"
)

func recordCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add and read health records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a visit note to a patient's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.CreateHealthRecordRequest{}
			req.PatientID, _ = cmd.Flags().GetString("patient")
			req.PractitionerID, _ = cmd.Flags().GetString("practitioner")
			req.Symptoms, _ = cmd.Flags().GetString("symptoms")
			req.Diagnosis, _ = cmd.Flags().GetString("diagnosis")
			req.Prescription, _ = cmd.Flags().GetString("prescription")

			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				record, err := app.Usecases.HealthRecords.Add(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), record)
			})
		},
	}
	addCmd.Flags().String("patient", "", "Patient ID")
	addCmd.Flags().String("practitioner", "", "Practitioner ID")
	addCmd.Flags().String("symptoms", "", "Reported symptoms")
	addCmd.Flags().String("diagnosis", "", "Diagnosis")
	addCmd.Flags().String("prescription", "", "Prescription")
	cmd.AddCommand(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List health records",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				var (
					list *dto.HealthRecordListResponse
					err  error
				)
				if patientID != "" {
					list, err = app.Usecases.HealthRecords.ListByPatient(ctx, patientID)
				} else {
					list, err = app.Usecases.HealthRecords.ListAll(ctx)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}
	listCmd.Flags().String("patient", "", "Filter by patient ID")
	cmd.AddCommand(listCmd)

	return cmd
}
