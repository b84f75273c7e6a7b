package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	           _
	 _ __ ___ | |__   ___ ___  ___ ___  _ __   ___
	| '_ ' _ \| '_ \ / __/ __|/ __/ _ \| '_ \ / _ \
	| | | | | | |_) | (__\__ \ (_| (_) | |_) |  __/
	|_| |_| |_|_.__/ \___|___/\___\___/| .__/ \___|
	                                   |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mbcscope",
	Short: "Merit Badge Counselor coverage analysis for Scouting units.",
	Long: LOGO + `mbcscope joins unit rosters with Merit Badge Counselor search results,
aggregates Scout merit badge demand, and produces coverage and
recruitment-priority reports, right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mbcscope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("data-dir", "d", "data/processed", "Directory for intermediate pipeline documents")
	rootCmd.PersistentFlags().StringP("badge-file", "b", "", "Custom merit badge list file (built-in list when empty)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".mbcscope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.mbcscope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default values for all keys
	viper.SetDefault("scoutbook.username", "")
	viper.SetDefault("scoutbook.password", "")
	viper.SetDefault("scoutbook.unit_id", "82190")
	viper.SetDefault("scoutbook.zip", "01720")
	viper.SetDefault("scoutbook.council_id", "181")
	viper.SetDefault("scoutbook.district_id", "430")
	viper.SetDefault("scoutbook.proximity", 25)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
