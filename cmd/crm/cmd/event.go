package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/policy"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
}

// eventDate parses the --date flag in ISO form.
func eventDate(cmd *cobra.Command) (*time.Time, error) {
	if !cmd.Flags().Changed("date") {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString("date")
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", raw)
}

var eventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event for a signed contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		date, err := eventDate(cmd)
		if err != nil {
			return err
		}
		attendees, _ := cmd.Flags().GetInt("attendees")

		event, err := engine.CreateEvent(cmd.Context(), p, mustUint(cmd, "contract"), policy.EventInput{
			EventDate: date,
			Location:  mustString(cmd, "location"),
			Attendees: attendees,
			Notes:     mustString(cmd, "notes"),
		})
		if err != nil {
			return renderError(err)
		}
		color.Green("Event created: id=%d", event.ID)
		return nil
	},
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event",
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

		var ch policy.EventChanges
		ch.EventDate, err = eventDate(cmd)
		if err != nil {
			return err
		}
		ch.Location = changedString(cmd, "location")
		ch.Attendees = changedInt(cmd, "attendees")
		ch.Notes = changedString(cmd, "notes")
		ch.SupportEmail = changedString(cmd, "support-email")
		ch.SupportContactID = changedUint(cmd, "support-contact")

		event, err := engine.UpdateEvent(cmd.Context(), p, id, ch)
		if err != nil {
			return renderError(err)
		}
		color.Green("Event updated: id=%d", event.ID)
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := currentPrincipal(cmd.Context())
		if err != nil {
			return renderError(err)
		}

		var events []models.Event
		switch {
		case cmd.Flags().Changed("for-contract"):
			events, err = engine.ListEventsForContract(cmd.Context(), p, mustUint(cmd, "for-contract"))
		case flagBool(cmd, "unassigned"):
			events, err = engine.ListUnassignedEvents(cmd.Context(), p)
		case flagBool(cmd, "mine"):
			events, err = engine.ListMyEvents(cmd.Context(), p)
		default:
			events, err = engine.ListEvents(cmd.Context(), p)
		}
		if err != nil {
			return renderError(err)
		}

		for _, e := range events {
			support := "-"
			if e.SupportContactID != nil {
				support = fmt.Sprint(*e.SupportContactID)
			}
			date := "-"
			if e.EventDate != nil {
				date = e.EventDate.Format("2006-01-02 15:04")
			}
			fmt.Printf("%d\tcontract=%d\t%s\t%s\tattendees=%d\tsupport=%s\n",
				e.ID, e.ContractID, date, e.Location, e.Attendees, support)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{eventCreateCmd, eventUpdateCmd} {
		c.Flags().String("date", "", "event date (YYYY-MM-DD or RFC3339)")
		c.Flags().String("location", "", "event location")
		c.Flags().Int("attendees", 0, "expected attendees")
		c.Flags().String("notes", "", "free-form notes")
	}
	eventCreateCmd.Flags().Uint("contract", 0, "contract id")
	_ = eventCreateCmd.MarkFlagRequired("contract")
	eventUpdateCmd.Flags().String("support-email", "", "assign support contact by email (admin only)")
	eventUpdateCmd.Flags().Uint("support-contact", 0, "assign support contact by id (admin only)")

	eventListCmd.Flags().Bool("unassigned", false, "only events without a support contact")
	eventListCmd.Flags().Bool("mine", false, "only events assigned to you")
	eventListCmd.Flags().Uint("for-contract", 0, "only events of one contract")

	eventCmd.AddCommand(eventCreateCmd, eventUpdateCmd, eventListCmd)
	rootCmd.AddCommand(eventCmd)
}
