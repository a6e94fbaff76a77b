package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/config"
	"github.com/ehrlich-b/axlab/internal/logger"
)

func main() {
	root := &cobra.Command{
		Use:   "axlab",
		Short: "axlab — an automated laboratory for discovering and classifying equational theories",
		Long:  "Enumerates, canonicalizes, and analyzes candidate axioms over a small operator signature: finite-model search, bounded rewriting proofs, implication probes against a library of known theories, and a per-axiom analysis battery.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			return logger.Init(level, logFile)
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-file", "", "also append logs to this file")
	root.PersistentFlags().String("spec", "", "path to a universe spec JSON file (defaults to the built-in single-binary-op example)")

	root.AddCommand(discoverCmd())
	root.AddCommand(runCmd())
	root.AddCommand(replayCmd())
	root.AddCommand(dossierCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadLabConfig resolves the project and user config directories and
// loads lab.yaml, falling back to DefaultLabConfig when neither exists.
func loadLabConfig() (config.LabConfig, string, error) {
	projectDir, err := config.GetProjectDir()
	if err != nil {
		return config.LabConfig{}, "", err
	}
	userDir, err := config.GetUserConfigDir()
	if err != nil {
		return config.LabConfig{}, "", err
	}
	if err := config.EnsureConfigDirs(userDir, projectDir); err != nil {
		return config.LabConfig{}, "", err
	}
	cfg, err := config.LoadLabConfig(userDir, projectDir)
	if err != nil {
		return config.LabConfig{}, "", err
	}
	return cfg, projectDir, nil
}
