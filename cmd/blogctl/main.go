package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"blogManagement/internal/auth"
	"blogManagement/internal/config"
	"blogManagement/internal/db"
	"blogManagement/models"
	"blogManagement/repository"
)

func openDB() (*sql.DB, error) {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.Database.Path)
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDB() // Open applies pending migrations
			if err != nil {
				return err
			}
			defer d.Close()
			fmt.Println("Initialized the database.")
			return nil
		},
	}
}

func rollbackDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback-db",
		Short: "Revert the most recently applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults()
			if err != nil {
				return err
			}
			d, err := sql.Open("sqlite3", cfg.Database.Path)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := db.RollbackLast(d); err != nil {
				return err
			}
			fmt.Println("Rolled back last migration.")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin <username> <password>",
		Short: "Create an admin user (creates the admin role if missing)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password := args[0], args[1]

			d, err := openDB()
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			roles := repository.NewRoleRepository(d)
			role, err := roles.GetByName(ctx, models.AdminRoleName)
			if errors.Is(err, repository.ErrNotFound) {
				role, err = roles.Create(ctx, models.AdminRoleName)
			}
			if err != nil {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			users := repository.NewUserRepository(d)
			u, err := users.Create(ctx, &models.User{
				Username: username,
				Password: hash,
				Active:   true,
				RoleID:   role.ID,
			})
			if err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return fmt.Errorf("username %q is already taken", username)
				}
				return err
			}
			fmt.Printf("Created admin user %q (id=%d).\n", u.Username, u.ID)
			return nil
		},
	}
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Blog service administration tool",
	}

	rootCmd.AddCommand(
		initDBCmd(),
		rollbackDBCmd(),
		createAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
