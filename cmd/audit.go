package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
)

func NewAuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the container store for integrity and optionally repair it",
		RunE:  runAudit,
	}
	cmd.Flags().Bool("repair", false, "Attempt to repair inconsistencies found in the store")
	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	repair, _ := cmd.Flags().GetBool("repair")

	c, err := containify.NewContainify("")
	if err != nil {
		return fmt.Errorf("failed to initialize containify for audit: %w", err)
	}

	return c.Audit(repair)
}
