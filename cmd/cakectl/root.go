package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const cakectlVersion = "0.1.0"

var version bool

var rootCmd = &cobra.Command{
	Use:   "cakectl",
	Short: "cakectl inspects and stores content-addressed Cakes",
	Long:  "cakectl builds, parses, and persists the Cake/CakeRack/CakePath identity algebra from the command line.",
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Printf("cakectl version %s\n", cakectlVersion)
			return
		}
		cmd.Help()
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&version, "version", false, "print cakectl's version")

	rootCmd.AddCommand(cakeCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(shardCmd)
	rootCmd.AddCommand(rackCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(sshaCmd)
	rootCmd.AddCommand(blobCmd)
	rootCmd.AddCommand(portalCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}
