package main

import (
	"fmt"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/spf13/cobra"
)

// tokenCmd mints an access token for local testing against the API
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a user and role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetString("user")
		rawRole, _ := cmd.Flags().GetString("role")

		role, ok := kernel.ParseRole(rawRole)
		if !ok {
			return errx.New("unknown role "+rawRole, errx.TypeValidation)
		}
		if userID == "" {
			return errx.New("--user is required", errx.TypeValidation)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Auth.JWTSecret == "" {
			return errx.New("auth jwt-secret is not configured", errx.TypeValidation)
		}

		tokens := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		token, err := tokens.GenerateAccessToken(kernel.NewUserID(userID), role)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "user id carried by the token")
	tokenCmd.Flags().String("role", kernel.RoleJobSeeker.String(), "JOB_SEEKER, RECRUITER or ADMINISTRATOR")
}
