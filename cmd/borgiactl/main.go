// borgiactl tareas de operación: migraciones, siembra del catálogo y auditoría de grupos.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/postgres"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/storage"
	"github.com/borgia-ae/borgia-api/pkg/config"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "borgiactl",
		Short:         "Operación de la API Borgia",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), seedCmd(), checkCmd())
	return cmd
}

// load lee .env y la configuración como lo hace la API.
func load() (*config.Config, *logger.Logger, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	return cfg, log, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	run := func(fn func(m *postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error {
			cfg, _, err := load()
			if err != nil {
				return err
			}
			return storage.Migrate(cfg.DB, fn)
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE:  run(func(m *postgres.Migrator) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones",
			Args:  cobra.NoArgs,
			RunE:  run(func(m *postgres.Migrator) error { return m.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			Args:  cobra.NoArgs,
			RunE: run(func(m *postgres.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version=%d dirty=%t\n", v, dirty)
				return nil
			}),
		},
	)
	return cmd
}

func seedCmd() *cobra.Command {
	var adminPassword string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Siembra permisos, grupos base, tienda por defecto y administrador",
		Long: `Crea lo que falte del catálogo de permisos y grupos. Es idempotente.
Sin --admin-password se usa BORGIA_ADMIN_PASSWORD; si ambos están vacíos no se crea el admin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			if adminPassword == "" {
				adminPassword = cfg.Borgia.AdminPassword
			}
			be, err := storage.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer be.Close()

			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			return catalog.NewBootstrap(cat, be.Permissions, be.Groups, be.Users, be.Shops, log).
				Run(cfg.Borgia.DefaultShopID, adminPassword)
		},
	}
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Contraseña del usuario admin")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Audita que los grupos sigan la convención <rol>-<tienda>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			be, err := storage.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer be.Close()

			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			issues, err := catalog.Audit(cat, be.Groups, be.Shops, cfg.Borgia.DefaultShopID)
			if err != nil {
				return err
			}
			for _, issue := range issues {
				fmt.Println(issue)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d incoherencias", len(issues))
			}
			fmt.Println("ok")
			return nil
		},
	}
}
