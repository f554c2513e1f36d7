package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

var addressCmd = &cobra.Command{
	Use:   "address <cake>",
	Short: "Print the canonical ContentAddress of a resolved Cake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cake.Parse(args[0])
		if err != nil {
			return err
		}
		addr, err := cake.AddressFromCake(c)
		if err != nil {
			return err
		}
		fmt.Printf("address: %s\n", addr.String())
		fmt.Printf("shard:   %s\n", addr.ShardName())
		return nil
	},
}
