package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gem-quest/internal/config"
)

var flagConfigEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the default configuration as YAML. Save it to
~/.gemquest/configs/gemquest.yaml or ./configs/gemquest.yaml and edit it,
or pass a copy with --config.

With --effective, prints the configuration the game would load right now,
after the config search and the --difficulty preset.

Examples:
  gemquest config > ~/.gemquest/configs/gemquest.yaml
  gemquest config --effective --difficulty hard`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEffective, "effective", false, "Print the loaded configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagConfigEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyGemQuestPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "# source: %s\n", loaded.Source)
	_, err = os.Stdout.Write(out)
	return err
}
