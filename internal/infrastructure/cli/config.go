package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/hashdraft/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hashdraft configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default hashdraft.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configForce {
			return NewCLIError(configPath+" already exists", "Pass --force to overwrite it", nil)
		}
		if err := config.Save(configPath, config.Default()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "- Put your key in %s as 'openai_api: <key>' (keep it out of version control)\n", config.DefaultSecretsFile)
		fmt.Fprintln(cmd.OutOrStdout(), "- Or export OPENAI_API_KEY")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		credential := "missing (drafting disabled)"
		if cfg.HasCredential() {
			credential = "configured"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# credential: %s\n", credential)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(configCmd)
}
