package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/db"
	"studybuddy-backend/internal/migrations"
	"studybuddy-backend/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string
	root := &cobra.Command{
		Use:           "studybuddy-admin",
		Short:         "Maintenance commands for the Study Buddy database",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "database URL (defaults to DATABASE_URL)")

	open := func() (*sqlx.DB, error) {
		url := databaseURL
		if url == "" {
			url = config.Load().DatabaseURL
		}
		return db.Open(url)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var migrationsDir string
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()
			if migrationsDir != "" {
				err = migrations.ApplyDir(cmd.Context(), database, migrationsDir)
			} else {
				err = migrations.Apply(cmd.Context(), database)
			}
			if err != nil {
				return err
			}
			applied, err := migrations.Applied(cmd.Context(), database)
			if err != nil {
				return err
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	migrate.Flags().StringVar(&migrationsDir, "dir", "", "apply migrations from this directory instead of the built-in set")
	root.AddCommand(migrate)

	root.AddCommand(&cobra.Command{
		Use:   "check-schema",
		Short: "Verify that every table and view the store needs exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()
			if err := services.NewRecordStore(database, logger).CheckSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ok")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "rollup-hours <student-id>",
		Short: "Recompute the monthly hour totals of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStudentID(args[0])
			if err != nil {
				return err
			}
			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()
			rollups, err := services.NewRecordStore(database, logger).RollupStudentHours(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, rollups)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "summary <student-id>",
		Short: "Print the dashboard summary of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStudentID(args[0])
			if err != nil {
				return err
			}
			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()
			summary, err := services.NewRecordStore(database, logger).GetStudentSummary(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	})
	return root
}

func parseStudentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", raw)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
