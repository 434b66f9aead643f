package main

import (
	"context"
	"os"

	"github.com/Syeddabbas07/chest-ray/cmd/bootstrap"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chest-ray",
		Short: "Chest X-ray clinic web application",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Migrate()
		},
	}
}

func createAdminCmd() *cobra.Command {
	req := &dto.CreateAdminRequest{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			admins, closeDB, err := bootstrap.Admins()
			if err != nil {
				return err
			}
			defer closeDB()

			admin, err := admins.CreateAdmin(context.Background(), nil, req)
			if err != nil {
				return err
			}
			logrus.Infof("Admin account %q created (id %d)", req.Login, admin.AccountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Login, "login", "", "admin username")
	cmd.Flags().StringVar(&req.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&req.ContactDetails, "contact", "", "admin contact details")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("contact")
	return cmd
}
