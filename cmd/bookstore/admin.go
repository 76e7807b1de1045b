package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/service"
	"github.com/bookstore/catalog-api/internal/infrastructure/db/postgres"
	"github.com/bookstore/catalog-api/pkg/logger"
)

var (
	flagAdminName     string
	flagAdminEmail    string
	flagAdminPassword string
)

// Registration never grants ROLE_ADMIN, so the first administrator is
// seeded from here.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a user holding ROLE_ADMIN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = postgres.Close(db) }()

		auth := service.NewAuthService(postgres.NewAuthRepository(db), nil, cfg.Auth.TokenTTL, logger.Component("auth"))
		user, err := auth.CreateUser(ctx, form.UserPayload{
			Name:     flagAdminName,
			Email:    flagAdminEmail,
			Password: flagAdminPassword,
		}, domain.RoleAdmin)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&flagAdminName, "name", "Administrator", "Display name")
	createAdminCmd.Flags().StringVar(&flagAdminEmail, "email", "", "Login email (required)")
	createAdminCmd.Flags().StringVar(&flagAdminPassword, "password", "", "Login password (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
