package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cakerack"
	"github.com/1nfdev/hashstore-go/internal/scan"
)

var rackCmd = &cobra.Command{
	Use:   "rack",
	Short: "Build or diff a CakeRack",
}

var rackBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Scan a directory and print its Rack's canonical content and Cake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := scan.Dir(args[0], scan.Cache{})
		if err != nil {
			return err
		}
		content, err := result.Rack.Content()
		if err != nil {
			return err
		}
		fmt.Println(content)
		fmt.Printf("cake: %s\n", result.Cake.String())
		return nil
	},
}

var rackMergeCmd = &cobra.Command{
	Use:   "merge <old-dir> <new-dir>",
	Short: "Diff two directories' Racks and print the patch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldResult, err := scan.Dir(args[0], scan.Cache{})
		if err != nil {
			return err
		}
		newResult, err := scan.Dir(args[1], scan.Cache{})
		if err != nil {
			return err
		}
		for _, patch := range newResult.Rack.Merge(oldResult.Rack) {
			printPatch(patch)
		}
		return nil
	},
}

func printPatch(patch cakerack.PatchEntry) {
	if patch.Cake == nil {
		fmt.Printf("%s %s\n", patch.Action, patch.Name)
		return
	}
	fmt.Printf("%s %s -> %s\n", patch.Action, patch.Name, patch.Cake.String())
}

func init() {
	rackCmd.AddCommand(rackBuildCmd, rackMergeCmd)
}
