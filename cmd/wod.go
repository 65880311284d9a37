package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/wod"
)

// newWodCmd creates the 'wod' subcommand: one fetch-and-extract run,
// printed to stdout.
func newWodCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "wod",
		Short: "Fetches today's workout and prints the extracted record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			record, err := application.pipeline.Run(cmd.Context(), application.cfg.Source.URL)
			if err != nil {
				var fetchErr *wod.FetchError
				if !errors.As(err, &fetchErr) {
					return err
				}
				// The page is unreachable; substitute the offline
				// fallback so the day still has a prescription.
				application.logger.Warn("fetch exhausted, using offline fallback",
					zap.Int("attempts", fetchErr.Attempts),
					zap.Error(fetchErr),
				)
				record = wod.Record{
					DateToken:   wod.UnknownDateToken,
					ISODate:     time.Now().UTC().Format("2006-01-02"),
					WorkoutText: application.cfg.Fallback.WorkoutText,
					SourceURL:   application.cfg.Source.URL,
				}
			}

			return printRecord(cmd, record, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func printRecord(cmd *cobra.Command, record wod.Record, asJSON bool) error {
	if asJSON {
		encoded, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		cmd.Println(string(encoded))
		return nil
	}

	cmd.Printf("Date: %s\n", record.ISODate)
	cmd.Printf("Rest Day: %t\n", record.IsRestDay)
	cmd.Printf("Workout:\n%s\n", record.WorkoutText)
	if record.HasScaled() {
		cmd.Printf("Scaled:\n%s\n", record.ScaledText)
	}
	return nil
}
