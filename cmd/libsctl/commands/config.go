package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/libshub/libs-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	API      string `json:"api,omitempty"       yaml:"api,omitempty"`
	Token    string `json:"token,omitempty"     yaml:"token,omitempty"`
	Output   string `json:"output"              yaml:"output"`
	CallerID string `json:"caller_id,omitempty" yaml:"caller_id,omitempty"`
}

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage libsctl configuration stored in ~/.libsctl/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with credentials masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			display := *config
			if display.Token != "" {
				display.Token = "***"
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(display)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(display)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("API", stringOrNA(display.API))
				_ = table.Append("Token", stringOrNA(display.Token))
				_ = table.Append("Output", stringOrNA(display.Output))
				_ = table.Append("Caller ID", stringOrNA(display.CallerID))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value; valid keys are api, token, output and caller_id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigKey(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Set the API token",
		Long:  "Prompt for the API token without echoing it to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Token: ")

			byteToken, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			fmt.Println()

			config := loadConfig()
			config.Token = string(byteToken)

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Println("Token saved")

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigKey(config, args[0], ""); err != nil {
				return err
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", args[0])

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file entirely",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get user home directory: %w", err)
				}

				configFile = filepath.Join(home, ".libsctl", "config.yml")
			}

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Println("Cleared configuration")

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		API:      viper.GetString("api"),
		Token:    viper.GetString("token"),
		Output:   viper.GetString("output"),
		CallerID: viper.GetString("caller_id"),
	}
}

func setConfigKey(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "token":
		config.Token = value
	case "output":
		config.Output = value
	case "caller_id":
		config.CallerID = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".libsctl")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func stringOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
