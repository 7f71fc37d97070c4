package main

import (
	"errors"
	"fmt"
	"time"

	"fitprofile/internal/middleware"

	"github.com/spf13/cobra"
)

var (
	tokenUser uint
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:         "token",
	Short:       "Print a bearer token for a user",
	Annotations: map[string]string{"db": "false"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET_KEY must be set")
		}
		token, err := middleware.IssueToken(cfg.JWTSecret, tokenUser, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVar(&tokenUser, "user", 0, "user ID")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
