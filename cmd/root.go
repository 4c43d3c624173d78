// Package cmd is for command line interactions with the consite application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "consite",
	Short: `Render conserved-site reports from alignment run directories.
Reads Stockholm alignments, hit tables and conservation scores produced
by an upstream search and scoring step`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log with development output")
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// initSettings reads an optional consite.yaml next to the run
func initSettings() {
	viper.SetConfigName("consite")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // missing settings file is fine, defaults apply
}

// newLogger builds the process logger
func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if viper.GetBool("verbose") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	return logger
}
