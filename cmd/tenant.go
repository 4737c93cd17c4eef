package cmd

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-directory/app/entity"
	"github.com/vibast-solutions/ms-go-directory/app/repository"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage API tenants",
}

var (
	tenantCreateLimit       int64
	tenantCreateValidMonths int
)

var tenantCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a tenant and print its API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tenantRepo, db, err := newTenantRepositoryForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		username := strings.TrimSpace(args[0])
		existing, err := tenantRepo.FindByUsername(context.Background(), username)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("tenant %q already exists", username)
		}

		apiKey, err := generateTenantAPIKey()
		if err != nil {
			return err
		}

		now := time.Now()
		tenant := &entity.Tenant{
			Username:  username,
			APIKey:    apiKey,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if tenantCreateLimit > 0 {
			tenant.APILimit = sql.NullInt64{Int64: tenantCreateLimit, Valid: true}
		}
		if tenantCreateValidMonths > 0 {
			tenant.APIValidTo = sql.NullTime{Time: now.AddDate(0, tenantCreateValidMonths, 0), Valid: true}
		}

		if err = tenantRepo.Create(context.Background(), tenant); err != nil {
			return err
		}

		fmt.Printf("username: %s\n", username)
		fmt.Printf("api_key: %s\n", apiKey)
		if tenant.APILimit.Valid {
			fmt.Printf("api_limit: %d\n", tenant.APILimit.Int64)
		}
		if tenant.APIValidTo.Valid {
			fmt.Printf("api_validto: %s\n", tenant.APIValidTo.Time.Format(time.RFC3339))
		}
		return nil
	},
}

var tenantDeactivateCmd = &cobra.Command{
	Use:   "deactivate <username>",
	Short: "Deactivate a tenant's API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tenantRepo, db, err := newTenantRepositoryForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		username := strings.TrimSpace(args[0])
		tenant, err := tenantRepo.FindByUsername(context.Background(), username)
		if err != nil {
			return err
		}
		if tenant == nil {
			return fmt.Errorf("tenant %q not found", username)
		}

		tenant.Active = false
		tenant.UpdatedAt = time.Now()
		if err = tenantRepo.Update(context.Background(), tenant); err != nil {
			return err
		}

		fmt.Printf("deactivated tenant %s\n", username)
		return nil
	},
}

var tenantSetLimitCmd = &cobra.Command{
	Use:   "set-limit <username> <limit>",
	Short: "Set a tenant's usage quota (0 removes the limit)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		limit, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || limit < 0 {
			return errors.New("limit must be a non-negative integer")
		}

		tenantRepo, db, err := newTenantRepositoryForCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		username := strings.TrimSpace(args[0])
		tenant, err := tenantRepo.FindByUsername(context.Background(), username)
		if err != nil {
			return err
		}
		if tenant == nil {
			return fmt.Errorf("tenant %q not found", username)
		}

		tenant.APILimit = sql.NullInt64{Int64: limit, Valid: limit > 0}
		tenant.UpdatedAt = time.Now()
		if err = tenantRepo.Update(context.Background(), tenant); err != nil {
			return err
		}

		if limit > 0 {
			fmt.Printf("set limit for %s to %d\n", username, limit)
		} else {
			fmt.Printf("removed limit for %s\n", username)
		}
		return nil
	},
}

func init() {
	tenantCreateCmd.Flags().Int64Var(&tenantCreateLimit, "limit", 0, "usage quota (0 = unlimited)")
	tenantCreateCmd.Flags().IntVar(&tenantCreateValidMonths, "valid-months", 0, "months until the key expires (0 = no expiry)")

	tenantCmd.AddCommand(tenantCreateCmd)
	tenantCmd.AddCommand(tenantDeactivateCmd)
	tenantCmd.AddCommand(tenantSetLimitCmd)
	rootCmd.AddCommand(tenantCmd)
}

func newTenantRepositoryForCommands() (*repository.TenantRepository, *sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repository.NewTenantRepository(db), db, nil
}

func generateTenantAPIKey() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}

	return "wsd_" + hex.EncodeToString(secret), nil
}
