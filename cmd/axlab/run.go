package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/enum"
	"github.com/ehrlich-b/axlab/internal/logger"
	"github.com/ehrlich-b/axlab/internal/obs"
	"github.com/ehrlich-b/axlab/internal/runner"
	"github.com/ehrlich-b/axlab/internal/store"
	"github.com/ehrlich-b/axlab/internal/term"
)

func runCmd() *cobra.Command {
	var axiomsFile string
	var outputDir string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the analysis battery over a set of axioms and persist the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, _ := cmd.Flags().GetString("spec")
			spec, err := loadSpec(specPath)
			if err != nil {
				return fmt.Errorf("load spec: %w", err)
			}

			var axioms []runner.Axiom
			if axiomsFile != "" {
				axioms, err = loadAxiomsFile(axiomsFile)
				if err != nil {
					return fmt.Errorf("load axioms: %w", err)
				}
			} else {
				terms := enum.Terms(spec)
				for _, a := range enum.Axioms(terms) {
					axioms = append(axioms, runner.Axiom{Left: a.Left, Right: a.Right})
				}
			}
			if len(axioms) == 0 {
				return fmt.Errorf("no axioms to analyze")
			}

			// invocation is a random id used only for correlating this
			// process's log lines; it never enters a content-addressed
			// artifact, so it can't affect run_id/axiom_id reproducibility.
			invocation := uuid.New().String()
			logger.Info("starting run", "invocation_id", invocation, "axiom_count", len(axioms))

			cfg, projectDir, err := loadLabConfig()
			if err != nil {
				return fmt.Errorf("load lab config: %w", err)
			}
			if outputDir == "" {
				outputDir = filepath.Join(projectDir, ".axlab", "runs", "latest")
			}

			st, err := store.Open(cfg.StorePath(projectDir))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			var metrics *obs.Metrics
			if metricsAddr != "" {
				metrics = obs.NewMetrics()
				st.SetMetrics(metrics)
				go func() { _ = metrics.Serve(cmd.Context(), metricsAddr) }()
			}

			batteryCfg := cfg.Battery
			batteryCfg.Metrics = metrics

			runCfg := runner.Config{Workers: cfg.Workers, Metrics: metrics}

			manifest, err := runner.RunBatteryAndPersist(context.Background(), spec, axioms, outputDir, batteryCfg, runCfg, st)
			if err != nil {
				return fmt.Errorf("run battery: %w", err)
			}

			logger.Info("run complete", "invocation_id", invocation, "run_id", manifest.RunID)
			fmt.Printf("run_id: %s\n", manifest.RunID)
			fmt.Printf("axioms: %d\n", manifest.AxiomCount)
			fmt.Printf("results: %s\n", manifest.ResultsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&axiomsFile, "axioms", "", "path to a file of \"left = right\" lines (default: full enumeration)")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory for run.json and results.jsonl (default: <project>/.axlab/runs/latest)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. 127.0.0.1:9091) while the run executes")
	return cmd
}

func loadAxiomsFile(path string) ([]runner.Axiom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var axioms []runner.Axiom
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed axiom line: %q", line)
		}
		left, err := term.Parse(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("parse left of %q: %w", line, err)
		}
		right, err := term.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("parse right of %q: %w", line, err)
		}
		axioms = append(axioms, runner.Axiom{Left: left, Right: right})
	}
	return axioms, scanner.Err()
}
