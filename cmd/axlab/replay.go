package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/runner"
)

func replayCmd() *cobra.Command {
	var runPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Reload a persisted run and print a per-axiom summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runPath == "" {
				return fmt.Errorf("--run is required")
			}
			manifest, err := runner.LoadRunManifest(runPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}
			resultsPath := runner.ResolveResultsPath(manifest.ResultsPath, filepath.Dir(runPath))
			results, err := runner.LoadResultsAsBattery(resultsPath)
			if err != nil {
				return fmt.Errorf("load results: %w", err)
			}

			fmt.Printf("run_id: %s\n", manifest.RunID)
			fmt.Printf("axioms: %d\n", manifest.AxiomCount)
			for i, r := range results {
				fmt.Printf("[%d] %s = %s  symmetry=%s trivial=%v smallest_model=%v\n",
					i, r.Left.Serialize(), r.Right.Serialize(),
					r.Result.Features.SymmetryClass, r.Result.Degeneracy.TrivialIdentity,
					derefIntOrNil(r.Result.SmallestModelSize))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runPath, "run", "", "path to a run.json manifest")
	return cmd
}

func derefIntOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
