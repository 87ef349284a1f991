package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Use-Tusk/tusk-sheet/internal/cliconfig"
	"github.com/Use-Tusk/tusk-sheet/internal/config"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

const defaultProjectConfig = ".tusk-sheet/config.yaml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set CLI configuration options",
	Long: `Get and set CLI configuration options.

User preferences are stored in ~/.config/tusk-sheet/cli.json

Available configuration keys:
  darkMode     Dark mode for terminal output (true/false)

Examples:
  tusk-sheet config get darkMode         # Show current dark mode setting
  tusk-sheet config set darkMode true    # Enable dark mode
  tusk-sheet config validate             # Check .tusk-sheet/config.yaml
  tusk-sheet config forget rooms.yaml    # Drop remembered column widths`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		cfg, err := cliconfig.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch strings.ToLower(key) {
		case "darkmode":
			if cfg.DarkMode != nil {
				fmt.Println(*cfg.DarkMode)
			} else {
				fmt.Println("auto")
			}
		default:
			return fmt.Errorf("unknown config key: %s\n\nAvailable keys: darkMode", key)
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set the value of a configuration key.

Available keys and values:
  darkMode     true/false/auto    Dark mode for terminal output

Examples:
  tusk-sheet config set darkMode true
  tusk-sheet config set darkMode auto`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]
		cfg, err := cliconfig.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch strings.ToLower(key) {
		case "darkmode":
			if strings.EqualFold(value, "auto") {
				cfg.DarkMode = nil
				break
			}
			boolVal, err := parseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for darkMode: %s (expected true/false/auto)", value)
			}
			cfg.DarkMode = &boolVal
		default:
			return fmt.Errorf("unknown config key: %s\n\nAvailable keys: darkMode", key)
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		log.UserInfo(fmt.Sprintf("%s = %s", key, value))
		return nil
	},
}

var configForgetCmd = &cobra.Command{
	Use:   "forget <sheet>",
	Short: "Forget the column widths remembered for a sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.ForgetWidths(args[0])
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		log.UserInfo("Forgot widths for " + args[0])
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a project config file for errors and unknown keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path := cfgFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = config.LoadedFile()
		}
		if path == "" {
			path = defaultProjectConfig
		}

		result := config.ValidateConfigFile(path)
		for _, w := range result.Warnings {
			fmt.Println(styles.WarningStyle.Render("⚠ " + w))
		}
		for _, e := range result.Errors {
			fmt.Println(styles.ErrorStyle.Render("✗ " + e))
		}
		if !result.Valid {
			return fmt.Errorf("%s is not valid", path)
		}

		fmt.Println(styles.SuccessStyle.Render("✓ " + path + " is valid"))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where configuration is read from",
	Run: func(cmd *cobra.Command, args []string) {
		project := config.LoadedFile()
		if project == "" {
			project = "(none, using defaults)"
		}
		fmt.Printf("project: %s\n", project)
		fmt.Printf("user:    %s\n", cliconfig.GetPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configForgetCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
}

// parseBool parses a boolean string value
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
