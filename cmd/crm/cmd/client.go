package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		in := policy.ClientInput{
			FullName: mustString(cmd, "name"),
			Email:    mustString(cmd, "email"),
			Company:  mustString(cmd, "company"),
			Phone:    mustString(cmd, "phone"),
		}
		if cmd.Flags().Changed("sales-contact") {
			id := mustUint(cmd, "sales-contact")
			in.SalesContactID = &id
		}

		client, err := engine.CreateClient(cmd.Context(), p, in)
		if err != nil {
			return renderError(err)
		}
		color.Green("Client created: id=%d", client.ID)
		return nil
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a client",
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

		var ch policy.ClientChanges
		ch.FullName = changedString(cmd, "name")
		ch.Email = changedString(cmd, "email")
		ch.Company = changedString(cmd, "company")
		ch.Phone = changedString(cmd, "phone")
		ch.SalesContactID = changedUint(cmd, "sales-contact")

		client, err := engine.UpdateClient(cmd.Context(), p, id, ch)
		if err != nil {
			return renderError(err)
		}
		color.Green("Client updated: id=%d", client.ID)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		var clients []models.Client
		if mine, _ := cmd.Flags().GetBool("mine"); mine {
			clients, err = engine.ListMyClients(cmd.Context(), p)
		} else {
			clients, err = engine.ListClients(cmd.Context(), p)
		}
		if err != nil {
			return renderError(err)
		}

		for _, c := range clients {
			owner := "-"
			if c.SalesContactID != nil {
				owner = fmt.Sprint(*c.SalesContactID)
			}
			fmt.Printf("%d\t%s\t%s\t%s\tsales=%s\n", c.ID, c.FullName, c.Company, c.Email, owner)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{clientCreateCmd, clientUpdateCmd} {
		c.Flags().String("name", "", "client full name")
		c.Flags().String("email", "", "client email")
		c.Flags().String("company", "", "company name")
		c.Flags().String("phone", "", "phone number")
		c.Flags().Uint("sales-contact", 0, "sales contact collaborator id (admin only)")
	}
	clientListCmd.Flags().Bool("mine", false, "only clients in your own portfolio")
	clientCmd.AddCommand(clientCreateCmd, clientUpdateCmd, clientListCmd)
	rootCmd.AddCommand(clientCmd)
}
