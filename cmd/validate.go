package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

// NewValidateCommand creates the `validate` command for verifying a
// metadata.json file against the record schema.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [metadata]",
		Short: "Validate a metadata.json file against the record schema",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	return cmd
}

// runValidate checks the provided metadata file against the record schema
// and reports any validation errors.
func runValidate(cmd *cobra.Command, args []string) error {
	problems, err := containify.ValidateRecordFile(args[0])
	if err != nil {
		return err
	}

	if len(problems) > 0 {
		logger.Println("Metadata validation errors:")
		for _, desc := range problems {
			logger.Printf(" - %s", desc)
		}
		return fmt.Errorf("validation failed with %d errors", len(problems))
	}

	logger.Println("Metadata is valid against the schema.")
	return nil
}
