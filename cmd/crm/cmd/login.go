package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			email = strings.TrimSpace(line)
		}
		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			password = strings.TrimSpace(line)
		}

		principal, token, err := resolver.Authenticate(cmd.Context(), email, password)
		if err != nil {
			return renderError(err)
		}
		if err := tokens.Save(token); err != nil {
			return fmt.Errorf("save session token: %w", err)
		}

		if principal.Role != "" {
			color.Green("Logged in as %s (role: %s)", principal.Email, principal.Role)
		} else {
			color.Green("Logged in as %s (no role assigned)", principal.Email)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tokens.Clear(); err != nil {
			return err
		}
		color.Green("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current authenticated collaborator",
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}
		role := principal.Role
		if role == "" {
			role = "(none)"
		}
		fmt.Printf("id=%d email=%s role=%s\n", principal.ID, principal.Email, role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "collaborator email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
