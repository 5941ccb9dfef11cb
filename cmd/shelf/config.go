package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/config"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/logging"
)

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	config.Settings
	ConfigPath string `json:"config_path"`
	IndexPath  string `json:"index_path"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status   string `json:"status"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	Replaced bool   `json:"replaced,omitempty"` // an unparseable config file was overwritten
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change shelf settings",
	Long: `Show or change settings stored in ~/.config/shelf/config.yml.

Keys:
  library_file   Path to the catalog file
  log_level      debug, info, warn, or error`,
	// Overrides the root setup so a broken config can still be fixed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		level := config.DefaultLogLevel
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			exitWithError(ExitConfigError, "creating logger: %v", err)
		}
		logger = l
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Resolve(libraryFlag)
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}

		resp := ConfigResponse{
			Settings:   s,
			ConfigPath: config.GlobalConfigPath(),
			IndexPath:  config.IndexPath(s.LibraryFile),
		}
		if humanOutput {
			fmt.Printf("library_file: %s (from %s)\n", resp.LibraryFile, resp.Source)
			fmt.Printf("log_level:    %s\n", resp.LogLevel)
			fmt.Printf("config file:  %s\n", resp.ConfigPath)
			fmt.Printf("index:        %s\n", resp.IndexPath)
		} else {
			outputJSON(resp)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a value from the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		value, err := cfg.Get(args[0])
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}

		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{args[0]: value})
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a value to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// A config that no longer parses is replaced rather than blocking the fix.
		replaced := false
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			logger.Warnw("existing config could not be read, other keys will be dropped",
				"path", config.GlobalConfigPath(), "error", err)
			cfg = &config.GlobalConfig{}
			replaced = true
		}
		if err := cfg.Set(key, value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if err := cfg.Save(); err != nil {
			exitWithError(ExitError, "%v", err)
		}

		stored, _ := cfg.Get(key)
		if humanOutput {
			fmt.Printf("Set %s = %s\n", key, stored)
			if replaced {
				fmt.Printf("Replaced unreadable config file %s\n", config.GlobalConfigPath())
			}
		} else {
			outputJSON(UpdateResponse{Status: "updated", Key: key, Value: stored, Replaced: replaced})
		}
		return nil
	},
}
