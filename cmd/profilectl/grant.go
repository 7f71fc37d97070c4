package main

import (
	"fmt"

	"fitprofile/internal/models"
	"fitprofile/internal/repository"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	grantUser  uint
	grantTypes []string
	grantDeny  bool
)

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Answer the read-access request for a user",
	Long:  `Grant (or with --deny, refuse) read access to sample types. Without --types every profile type is answered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := models.ProfileSampleTypes
		if len(grantTypes) > 0 {
			types = make([]models.SampleType, 0, len(grantTypes))
			for _, t := range grantTypes {
				st := models.SampleType(t)
				if !st.Valid() {
					return fmt.Errorf("unknown sample type %q", t)
				}
				types = append(types, st)
			}
		}

		status := models.AuthorizationGranted
		if grantDeny {
			status = models.AuthorizationDenied
		}

		repo := repository.NewAuthorizationRepository(db)
		if err := repo.Set(cmd.Context(), grantUser, types, status); err != nil {
			return err
		}

		auths, err := repo.FindByUserID(cmd.Context(), grantUser)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("Read access for user %d:\n", grantUser)
		for _, a := range auths {
			mark := green(string(a.Status))
			if a.Status == models.AuthorizationDenied {
				mark = red(string(a.Status))
			}
			fmt.Printf("  %-14s %s\n", a.Type, mark)
		}
		return nil
	},
}

func init() {
	grantCmd.Flags().UintVar(&grantUser, "user", 0, "user ID")
	grantCmd.Flags().StringSliceVar(&grantTypes, "types", nil, "comma-separated sample types")
	grantCmd.Flags().BoolVar(&grantDeny, "deny", false, "deny instead of grant")
	grantCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(grantCmd)
}
