package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turrs/bank-skd/internal/infrastructure/persistence"
)

// AdminCommandHandler runs schema and account maintenance
type AdminCommandHandler struct{}

// MigrateCmd applies the schema migrations
func (commandHandler *AdminCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(cmd, false)
	if err != nil {
		return err
	}
	defer env.close()

	if err := persistence.Migrate(env.db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	env.logger.Info("Database migrations completed successfully")
	return nil
}

// CreateAdminCmd creates an admin account or promotes an existing user
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return fmt.Errorf("invalid email flag: %w", err)
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return fmt.Errorf("invalid password flag: %w", err)
	}
	fullName, err := cmd.Flags().GetString("full-name")
	if err != nil {
		return fmt.Errorf("invalid full-name flag: %w", err)
	}

	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	user, err := env.services.UserAdmin.EnsureAdmin(cmd.Context(), email, password, fullName)
	if err != nil {
		return err
	}
	env.logger.Info("Admin account ready: ", user.ID, " ", user.Email)
	return nil
}

// ExpireSessionsCmd submits every running attempt whose deadline has passed
func (commandHandler *AdminCommandHandler) ExpireSessionsCmd(cmd *cobra.Command, _ []string) error {
	batchSize, err := cmd.Flags().GetInt("batch-size")
	if err != nil {
		return fmt.Errorf("invalid batch-size flag: %w", err)
	}
	if batchSize < 1 {
		return fmt.Errorf("batch-size must be positive")
	}

	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	total := 0
	for {
		n, err := env.services.Tryouts.FinalizeExpired(cmd.Context(), batchSize)
		if err != nil {
			return err
		}
		total += n
		if n < batchSize {
			break
		}
	}
	env.logger.Info(fmt.Sprintf("Finalized %d expired sessions", total))
	return nil
}

// InitAdminCommands registers the maintenance commands
func InitAdminCommands(rootCmd *cobra.Command) error {
	handler := &AdminCommandHandler{}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	var createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create or promote an admin account",
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().StringP("email", "", "", "Admin email address")
	createAdminCmd.Flags().StringP("password", "", "", "Admin password")
	createAdminCmd.Flags().StringP("full-name", "", "Administrator", "Admin display name")
	if err := createAdminCmd.MarkFlagRequired("email"); err != nil {
		return err
	}
	if err := createAdminCmd.MarkFlagRequired("password"); err != nil {
		return err
	}
	rootCmd.AddCommand(createAdminCmd)

	var expireSessionsCmd = &cobra.Command{
		Use:   "expire-sessions",
		Short: "Submit every tryout session past its deadline",
		RunE:  handler.ExpireSessionsCmd,
	}
	expireSessionsCmd.Flags().IntP("batch-size", "", 100, "Sessions finalized per round")
	rootCmd.AddCommand(expireSessionsCmd)

	return nil
}
