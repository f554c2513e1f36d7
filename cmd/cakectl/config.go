package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/config"
)

var configGlobalFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or write cakectl's configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value (e.g. user.name, storage.data_dir)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.GetValue(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.SetValue(args[0], args[1], configGlobalFlag)
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&configGlobalFlag, "global", false, "write to the global config instead of the repo config")
	configCmd.AddCommand(configGetCmd, configSetCmd)
}
