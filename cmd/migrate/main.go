package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"instauto/internal/adapter/persistence/repository"
	"instauto/internal/config"
	"instauto/internal/infrastructure/database"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the instauto schemas",
		Long: `migrate creates or updates the storage used by the quote request service:
- postgres: workshops and notifications tables (gorm AutoMigrate)
- dynamodb: quote request table with its workshop and motorist indexes
- sqlite:   quote request table for single node deployments`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(postgresCmd())
	rootCmd.AddCommand(dynamodbCmd())
	rootCmd.AddCommand(sqliteCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error: "), err)
		os.Exit(1)
	}
}

func postgresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "postgres",
		Short: "Migrate the workshops and notifications tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := database.MigratePostgres(cfg.Database.URL); err != nil {
				return err
			}
			fmt.Printf("postgres: %s\n", color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	}
}

func dynamodbCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "dynamodb",
		Short: "Create the quote request table and its indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if table == "" {
				table = cfg.AWS.QuoteRequestsTable
			}

			ctx := context.Background()
			ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
			if err != nil {
				return err
			}
			created, err := repository.CreateQuoteRequestsTable(ctx, ddb, table)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("dynamodb %s: %s\n", table, color.New(color.FgGreen).Sprint("created"))
			} else {
				fmt.Printf("dynamodb %s: %s\n", table, color.New(color.FgYellow).Sprint("already exists"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name (defaults to QUOTE_REQUESTS_TABLE)")
	return cmd
}

func sqliteCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "sqlite",
		Short: "Create the SQLite quote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				path = cfg.SQLitePath
			}
			db, err := database.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Printf("sqlite %s: %s\n", path, color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "database file (defaults to SQLITE_PATH)")
	return cmd
}
