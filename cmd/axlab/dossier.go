package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/dossier"
	"github.com/ehrlich-b/axlab/internal/runner"
)

// batteryConfigFromManifest round-trips a run manifest's battery_config
// map back into a battery.Config via JSON, since both share the same
// field tags.
func batteryConfigFromManifest(manifest runner.RunManifest) battery.Config {
	cfg := battery.DefaultConfig()
	data, err := json.Marshal(manifest.BatteryConfig)
	if err != nil {
		return cfg
	}
	_ = json.Unmarshal(data, &cfg)
	return cfg
}

func dossierCmd() *cobra.Command {
	var runPath string
	var index int

	cmd := &cobra.Command{
		Use:   "dossier",
		Short: "Build an interpretation dossier for one axiom in a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runPath == "" {
				return fmt.Errorf("--run is required")
			}
			specPath, _ := cmd.Flags().GetString("spec")
			spec, err := loadSpec(specPath)
			if err != nil {
				return fmt.Errorf("load spec: %w", err)
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
			if index < 0 || index >= len(results) {
				return fmt.Errorf("axiom index %d out of range [0,%d)", index, len(results))
			}

			peers := make([]dossier.PeerResult, 0, len(results)-1)
			for i, r := range results {
				if i == index {
					continue
				}
				peers = append(peers, dossier.PeerResult{
					AxiomID: fmt.Sprintf("%d", i),
					Left:    r.Left,
					Right:   r.Right,
					Result:  r.Result,
				})
			}

			target := results[index]
			cfg := dossier.FromBatteryConfig(batteryConfigFromManifest(manifest))
			d := dossier.InterpretAxiom(spec, target.Left, target.Right, target.Result, cfg, peers)
			if err := dossier.ValidateCitations(d); err != nil {
				return fmt.Errorf("dossier failed citation validation: %w", err)
			}

			out, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&runPath, "run", "", "path to a run.json manifest")
	cmd.Flags().IntVar(&index, "axiom", 0, "index of the axiom within the run's results to interpret")
	return cmd
}
