package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"revwhoix-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure revwhoix settings",
	Long: fmt.Sprintf(`Reads and writes settings in $HOME/.revwhoix.yaml. Every key can also be set
through the environment, e.g. REVWHOIX_BASE_URL.

Keys: %s`, strings.Join(config.Keys(), ", ")),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Set(args[0], args[1])
		if err != nil {
			return fmt.Errorf("setting %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s set successfully (%s).\n", args[0], path)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get the current value of a configuration key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not set.\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setCmd)
	configCmd.AddCommand(getCmd)
}
