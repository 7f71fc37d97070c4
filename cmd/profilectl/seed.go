package main

import (
	"fmt"
	"time"

	"fitprofile/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create synthetic profiles for testing",
	Example: `  profilectl seed --users 1000
  profilectl seed --start-id 2002 --users 8 --history 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := seed.Seed(cmd.Context(), db, seedOpts)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d users, %d samples, %d authorizations in %v\n",
			green("✓ Seeded"), res.Users, res.Samples, res.Authorizations, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	seedCmd.Flags().UintVar(&seedOpts.StartID, "start-id", 1, "first user ID")
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seed.DefaultNumUsers, "number of users")
	seedCmd.Flags().IntVar(&seedOpts.History, "history", seed.DefaultHistory, "height and weight samples per user")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.AddCommand(seedCmd)
}
