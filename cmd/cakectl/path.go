package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cakepath"
)

var pathCmd = &cobra.Command{
	Use:   "path <cakepath>",
	Short: "Parse a CakePath and print its root, segments, and filename",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := cakepath.New(args[0])
		if err != nil {
			return err
		}
		if root, ok := p.Root(); ok {
			fmt.Printf("root:     %s\n", root.String())
		} else {
			fmt.Println("root:     (relative)")
		}
		fmt.Printf("segments: %s\n", p.PathJoin())
		if name, ok := p.Filename(); ok {
			fmt.Printf("filename: %s\n", name)
		}
		return nil
	},
}
