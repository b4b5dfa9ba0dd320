package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Manage contracts",
}

var contractCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contract for a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		clientID := mustUint(cmd, "client")
		total, _ := cmd.Flags().GetFloat64("total")
		due, _ := cmd.Flags().GetFloat64("due")
		status, _ := cmd.Flags().GetString("status")

		contract, err := engine.CreateContract(cmd.Context(), p, clientID, policy.ContractInput{
			TotalAmount: total,
			AmountDue:   due,
			Status:      models.ContractStatus(status),
		})
		if err != nil {
			return renderError(err)
		}
		color.Green("Contract created: id=%d status=%s", contract.ID, contract.Status)
		return nil
	},
}

var contractUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a contract",
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

		var ch policy.ContractChanges
		ch.TotalAmount = changedFloat(cmd, "total")
		ch.AmountDue = changedFloat(cmd, "due")
		ch.SalesContactID = changedUint(cmd, "sales-contact")
		if s := changedString(cmd, "status"); s != nil {
			status := models.ContractStatus(*s)
			ch.Status = &status
		}

		contract, err := engine.UpdateContract(cmd.Context(), p, id, ch)
		if err != nil {
			return renderError(err)
		}
		signed := "-"
		if contract.SignedAt != nil {
			signed = contract.SignedAt.Format("2006-01-02 15:04")
		}
		color.Green("Contract updated: id=%d status=%s signed_at=%s", contract.ID, contract.Status, signed)
		return nil
	},
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		var contracts []models.Contract
		switch {
		case cmd.Flags().Changed("client"):
			contracts, err = engine.ListContractsForClient(cmd.Context(), p, mustUint(cmd, "client"))
		case flagBool(cmd, "unsigned"):
			contracts, err = engine.ListUnsignedContracts(cmd.Context(), p)
		case flagBool(cmd, "unpaid"):
			contracts, err = engine.ListUnpaidContracts(cmd.Context(), p)
		default:
			contracts, err = engine.ListContracts(cmd.Context(), p)
		}
		if err != nil {
			return renderError(err)
		}

		for _, k := range contracts {
			fmt.Printf("%d\tclient=%d\ttotal=%.2f\tdue=%.2f\t%s\n", k.ID, k.ClientID, k.TotalAmount, k.AmountDue, k.Status)
		}
		return nil
	},
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	contractCreateCmd.Flags().Uint("client", 0, "client id")
	contractCreateCmd.Flags().Float64("total", 0, "total amount")
	contractCreateCmd.Flags().Float64("due", 0, "amount still due")
	contractCreateCmd.Flags().String("status", "", "initial status (default PENDING)")
	_ = contractCreateCmd.MarkFlagRequired("client")

	contractUpdateCmd.Flags().Float64("total", 0, "total amount")
	contractUpdateCmd.Flags().Float64("due", 0, "amount still due")
	contractUpdateCmd.Flags().String("status", "", "PENDING, SIGNED or CANCELLED")
	contractUpdateCmd.Flags().Uint("sales-contact", 0, "sales contact collaborator id (admin only)")

	contractListCmd.Flags().Bool("unsigned", false, "only contracts awaiting signature")
	contractListCmd.Flags().Bool("unpaid", false, "only contracts with a remaining balance")
	contractListCmd.Flags().Uint("client", 0, "only contracts of one client")

	contractCmd.AddCommand(contractCreateCmd, contractUpdateCmd, contractListCmd)
	rootCmd.AddCommand(contractCmd)
}
