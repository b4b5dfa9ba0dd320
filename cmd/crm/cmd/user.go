package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/internal/policy"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage collaborator accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a collaborator",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		in := policy.UserInput{
			Email:    mustString(cmd, "email"),
			FullName: mustString(cmd, "name"),
			Password: mustString(cmd, "password"),
			RoleName: mustString(cmd, "role"),
		}
		in.EmployeeNumber = changedString(cmd, "employee-number")

		user, err := engine.CreateUser(cmd.Context(), p, in)
		if err != nil {
			return renderError(err)
		}
		color.Green("Collaborator created: id=%d email=%s", user.ID, user.Email)
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a collaborator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var ch policy.UserChanges
		ch.Email = changedString(cmd, "email")
		ch.FullName = changedString(cmd, "name")
		ch.Password = changedString(cmd, "password")
		ch.EmployeeNumber = changedString(cmd, "employee-number")
		ch.RoleName = changedString(cmd, "role")

		user, err := engine.UpdateUser(cmd.Context(), p, id, ch)
		if err != nil {
			return renderError(err)
		}
		color.Green("Collaborator updated: id=%d", user.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collaborator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := engine.DeleteUser(cmd.Context(), p, id); err != nil {
			return renderError(err)
		}
		color.Green("Collaborator deleted: id=%d", id)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collaborators",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		users, err := engine.ListUsers(cmd.Context(), p)
		if err != nil {
			return renderError(err)
		}
		for _, u := range users {
			role := u.RoleName()
			if role == "" {
				role = "-"
			}
			fmt.Printf("%d\t%s\t%s\trole=%s\n", u.ID, u.Email, u.FullName, role)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{userCreateCmd, userUpdateCmd} {
		c.Flags().String("email", "", "collaborator email")
		c.Flags().String("name", "", "full name")
		c.Flags().String("password", "", "password")
		c.Flags().String("role", "", "role name (gestion, commercial, support)")
		c.Flags().String("employee-number", "", "employee number")
	}
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd, userUpdateCmd, userDeleteCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}
