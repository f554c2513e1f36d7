package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Scan a directory tree and print its top-level Rack entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := scan.Dir(args[0], scan.Cache{})
		if err != nil {
			return err
		}
		for _, name := range result.Rack.Keys() {
			c, _ := result.Rack.Get(name)
			if c == nil {
				fmt.Printf("%s\t(reserved)\n", name)
				continue
			}
			fmt.Printf("%s\t%s\n", name, c.String())
		}
		fmt.Printf("---\nrack cake: %s\n", result.Cake.String())
		return nil
	},
}
