package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"appealapp/src/models"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your complaints",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := signedInClient()
			if err != nil {
				return err
			}
			complaints, err := c.MyComplaints(context.Background())
			if err != nil {
				return err
			}
			printComplaints(complaints)
			return nil
		},
	}
}

func reviewCmd() *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Admin review of all complaints",
	}
	reviewCmd.AddCommand(reviewListCmd())
	reviewCmd.AddCommand(reviewStatusCmd())
	return reviewCmd
}

func reviewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every complaint",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := signedInClient()
			if err != nil {
				return err
			}
			complaints, err := c.AllComplaints(context.Background())
			if err != nil {
				return err
			}
			printComplaints(complaints)
			return nil
		},
	}
}

func reviewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <pending|processing|resolved|rejected>",
		Short: "Update a complaint's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("bad complaint id %q", args[0])
			}
			c, err := signedInClient()
			if err != nil {
				return err
			}
			updated, err := c.SetComplaintStatus(context.Background(), uint(id), args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Complaint #%d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func printComplaints(complaints []models.Complaint) {
	if len(complaints) == 0 {
		fmt.Println("No complaints found")
		return
	}
	fmt.Printf("%-5s %-12s %-10s %-25s %s\n", "ID", "Kind", "Status", "Name", "Date")
	for _, c := range complaints {
		fmt.Printf("%-5d %-12s %-10s %-25s %s\n",
			c.ID, c.Kind, c.Status, c.Name, c.CreatedAt.Format("2006-01-02 15:04"))
	}
}
