package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
)

const minPasswordLength = 8

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an email/password admin account",
	Long: `Create an admin account that can sign in at /api/auth/signin
and manage products and blog posts.`,
	RunE: runAdminCreate,
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, _ []string) error {
	admin, err := newAdmin(adminEmail, adminPassword, adminName, time.Now())
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, db, err := database.Connect(cmd.Context(), cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(cmd.Context()) }()

	if err := database.EnsureIndexes(cmd.Context(), db); err != nil {
		return err
	}

	err = repository.NewAdminStore(db).Create(cmd.Context(), admin)
	if errors.Is(err, repository.ErrEmailTaken) {
		return fmt.Errorf("admin %s already exists", admin.Email)
	}
	if err != nil {
		return err
	}

	log.Info("Admin created", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return nil
}

// newAdmin checks the flags and hashes the password.
func newAdmin(email, password, name string, now time.Time) (*models.Admin, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &models.Admin{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}, nil
}
