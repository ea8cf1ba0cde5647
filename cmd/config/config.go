package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

var cfgFile string

// InitConfig wires viper to the config file and environment. Settings come
// from, in increasing precedence: defaults, ~/.config/grove-browse/config.yaml
// (or --config), and BROWSE_* environment variables.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "grove-browse")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BROWSE")

	// Set defaults
	viper.SetDefault("reserved_nodes", []string{"NAME", "TYPE", "VERSION", "HDF_VERSION"})
	viper.SetDefault("hidden_suffixes", []string{".h5", ".db"})
	viper.SetDefault("show_files", true)
	viper.SetDefault("show_all", false)

	// A missing config file is fine; defaults and env apply.
	_ = viper.ReadInConfig()
}

// BuildOptions maps the effective configuration onto engine options.
func BuildOptions() []browse.Option {
	return []browse.Option{
		browse.WithReservedNodes(viper.GetStringSlice("reserved_nodes")),
		browse.WithHiddenSuffixes(viper.GetStringSlice("hidden_suffixes")),
		browse.WithShowFiles(viper.GetBool("show_files")),
		browse.WithShowAll(viper.GetBool("show_all")),
	}
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/grove-browse/config.yaml)")
}
