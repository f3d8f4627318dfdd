package cli

import (
	"context"

	"go-medical-scheduling/cmd/bootstrap"
	"go-medical-scheduling/internal/seeder"

	"github.com/spf13/cobra"
)

func seedCmd(newApp appFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register fake patients and practitioners",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			practitioners, _ := cmd.Flags().GetInt("practitioners")
			seed, _ := cmd.Flags().GetUint64("seed")

			return withApp(cmd, newApp, func(ctx context.Context, app *bootstrap.App) error {
				s := seeder.New(app.Log, seed, app.Usecases.Patients, app.Usecases.Practitioners)
				result, err := s.Run(ctx, patients, practitioners)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().Int("patients", 20, "Number of patients to register")
	cmd.Flags().Int("practitioners", 5, "Number of practitioners to register")
	cmd.Flags().Uint64("seed", 0, "Fake data seed; 0 is random")
	return cmd
}
