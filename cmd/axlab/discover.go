package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/enum"
)

func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Enumerate canonical terms and candidate axioms for a spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, _ := cmd.Flags().GetString("spec")
			spec, err := loadSpec(specPath)
			if err != nil {
				return fmt.Errorf("load spec: %w", err)
			}

			terms := enum.Terms(spec)
			fmt.Printf("terms: %d\n", len(terms))
			for _, t := range terms {
				fmt.Println(" ", t.Serialize())
			}

			axioms := enum.Axioms(terms)
			fmt.Printf("candidate axioms: %d\n", len(axioms))
			for _, a := range axioms {
				fmt.Printf("  %s = %s\n", a.Left.Serialize(), a.Right.Serialize())
			}
			return nil
		},
	}
}
