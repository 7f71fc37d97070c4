package main

import (
	"fmt"
	"time"

	"fitprofile/internal/healthstore"
	"fitprofile/internal/models"
	"fitprofile/internal/repository"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	recordUser  uint
	recordType  string
	recordValue float64
	recordUnit  string
	recordAt    string
	dobUser     uint
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Store a height or body mass sample",
	Example: `  profilectl record --user 1 --type height --value 180 --unit cm
  profilectl record --user 1 --type body_mass --value 160 --unit lb --at 2024-05-01T08:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sampleType := models.SampleType(recordType)
		if !sampleType.Quantity() {
			return fmt.Errorf("type must be height or body_mass, got %q", recordType)
		}
		if recordValue < 0 {
			return fmt.Errorf("value must not be negative")
		}
		value, err := healthstore.ToCanonical(sampleType, recordValue, recordUnit)
		if err != nil {
			return err
		}

		sample := models.HealthSample{
			UserID: recordUser,
			Type:   sampleType,
			Value:  value,
			Unit:   sampleType.CanonicalUnit(),
		}
		if recordAt != "" {
			at, err := time.Parse(time.RFC3339, recordAt)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
			sample.RecordedAt = at.UTC()
		}

		if err := repository.NewSampleRepository(db).Create(cmd.Context(), &sample); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %s = %g %s for user %d (id %d)\n",
			green("✓ Recorded"), sample.Type, sample.Value, sample.Unit, sample.UserID, sample.ID)
		return nil
	},
}

var dobCmd = &cobra.Command{
	Use:   "dob YYYY-MM-DD",
	Short: "Set a user's date of birth",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dob, err := time.Parse("2006-01-02", args[0])
		if err != nil || dob.After(time.Now()) {
			return fmt.Errorf("date must be a past date in YYYY-MM-DD format")
		}

		c := models.Characteristic{UserID: dobUser, DateOfBirth: dob}
		if err := repository.NewCharacteristicRepository(db).Upsert(cmd.Context(), &c); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s date of birth %s for user %d\n", green("✓ Saved"), args[0], dobUser)
		return nil
	},
}

func init() {
	recordCmd.Flags().UintVar(&recordUser, "user", 0, "user ID")
	recordCmd.Flags().StringVar(&recordType, "type", "", "height or body_mass")
	recordCmd.Flags().Float64Var(&recordValue, "value", 0, "sample value")
	recordCmd.Flags().StringVar(&recordUnit, "unit", "", "m, cm, in, ft, kg, g, lb or st (default canonical)")
	recordCmd.Flags().StringVar(&recordAt, "at", "", "RFC3339 time of the reading (default now)")
	recordCmd.MarkFlagRequired("user")
	recordCmd.MarkFlagRequired("type")
	recordCmd.MarkFlagRequired("value")

	dobCmd.Flags().UintVar(&dobUser, "user", 0, "user ID")
	dobCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(dobCmd)
}
