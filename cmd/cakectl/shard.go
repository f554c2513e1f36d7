package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

var shardMaxFlag int

var shardCmd = &cobra.Command{
	Use:   "shard <content-address>",
	Short: "Print the shard bucket an address routes to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cake.ParseAddress(args[0])
		if err != nil {
			return err
		}
		num := cake.ShardNum(addr.HashBytes(), shardMaxFlag)
		fmt.Println(cake.ShardName(num))
		return nil
	},
}

func init() {
	shardCmd.Flags().IntVar(&shardMaxFlag, "max", cake.MaxShards, "shard count to route against")
}
