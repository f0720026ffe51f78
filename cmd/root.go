package main

import (
	"github.com/spf13/cobra"

	"household/internal/config"
	"household/internal/logx"
)

var (
	flagEnvFile string
	flagPolicy  string
	flagDriver  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:          "household",
	Short:        "Household inventory, usage forecasts and restocking suggestions",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(flagEnvFile); err != nil {
			return err
		}
		// флаги важнее окружения
		if flagPolicy != "" {
			cfg.PolicyFile = flagPolicy
		}
		if flagDriver != "" {
			cfg.Store.Driver = flagDriver
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		logx.Init(logx.LoggerOpts{Environment: cfg.Environment(), Output: cmd.ErrOrStderr()})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "Policy TOML file (overrides POLICY_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "store", "", "Store driver: memory, sqlite or postgres (overrides STORE_DRIVER)")
}
