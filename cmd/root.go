/*
Copyright © 2026 Krzysztof Grykiel
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "eriast-derby",
	Short: "Turn-based vehicular combat race engine",
	Long: `Eriast Derby runs turn-based races where armed vehicles fight their way
along a staged track. Start an interactive race with the race command or
run headless batches with simulate.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eriast-derby.yaml)")
	rootCmd.PersistentFlags().StringP("data_dir", "d", "", "directory holding vehicle and track presets")
	rootCmd.PersistentFlags().Int64("seed", 0, "dice seed, 0 means random")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".eriast-derby")
	}

	viper.SetEnvPrefix("derby")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDirs resolves the preset search path from flags and config.
func dataDirs() []string {
	dir := viper.GetString("data_dir")
	if dir == "" {
		dir = "./data"
	}
	return []string{dir}
}
