package cli

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/vakoc/buildstamp/pkg/inspect"
	"github.com/vakoc/buildstamp/pkg/schema"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of identity reports",
		RunE: func(cc *cobra.Command, _ []string) error {
			r := schema.NewReflector()

			b, err := schema.MarshalIndent(r.Reflect(reflect.TypeOf(inspect.Report{})))
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			if _, err := cc.OutOrStdout().Write(b); err != nil {
				return fmt.Errorf("failed to write schema: %w", err)
			}

			return nil
		},
	}
}
