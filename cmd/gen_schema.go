package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoahWhiteson/Containify/pkg/containify"
	"github.com/NoahWhiteson/Containify/pkg/logger"
)

// NewGenSchemaCommand creates the `gen-schema` command for generating the
// JSON Schema of the container metadata record.
func NewGenSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "gen-schema",
		Short:  "Generate JSON Schema for the metadata record (hidden)",
		Hidden: true,
		RunE:   runGenSchema,
	}
	return cmd
}

// runGenSchema reflects the record type into a JSON Schema and writes it to
// metadata.schema.json.
func runGenSchema(cmd *cobra.Command, args []string) error {
	out, err := containify.RecordSchema()
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaPath := "metadata.schema.json"
	if err := os.WriteFile(schemaPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write schema to %s: %w", schemaPath, err)
	}

	logger.Println("Schema generated at", schemaPath)
	return nil
}
