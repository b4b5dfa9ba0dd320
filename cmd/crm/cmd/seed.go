package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/internal/db"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run migrations and seed the fixed role/permission catalog",
	Long: `Runs schema migrations and the idempotent RBAC seed. With
--admin-email an initial gestion collaborator is created so a fresh
deployment can log in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(conn); err != nil {
			return err
		}
		if err := db.SeedRBAC(conn); err != nil {
			return err
		}
		color.Green("Roles and permissions seeded.")

		if seedAdminEmail != "" {
			user, err := db.BootstrapAdmin(conn, seedAdminEmail, seedAdminPassword)
			if err != nil {
				return err
			}
			color.Green("Admin collaborator ready: %s (id=%d)", user.Email, user.ID)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "", "create an initial gestion collaborator")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "changeme", "password for the initial collaborator")
	rootCmd.AddCommand(seedCmd)
}
