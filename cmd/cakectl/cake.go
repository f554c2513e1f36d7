package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

var cakeCmd = &cobra.Command{
	Use:   "cake",
	Short: "Build or inspect a Cake",
}

var cakeRoleFlag string

func parseRoleFlag(s string) (cake.Role, error) {
	switch s {
	case "", "synapse":
		return cake.Synapse, nil
	case "neuron":
		return cake.Neuron, nil
	default:
		return 0, fmt.Errorf("unknown role %q (want \"synapse\" or \"neuron\")", s)
	}
}

var cakeFromBytesCmd = &cobra.Command{
	Use:   "from-bytes <data>",
	Short: "Build a Cake from a literal string argument",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := parseRoleFlag(cakeRoleFlag)
		if err != nil {
			return err
		}
		c, err := cake.FromBytes([]byte(args[0]), role)
		if err != nil {
			return err
		}
		fmt.Println(c.String())
		return nil
	},
}

var cakeFromFileCmd = &cobra.Command{
	Use:   "from-file <path>",
	Short: "Build a Cake by streaming a file's contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := parseRoleFlag(cakeRoleFlag)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		c, err := cake.FromStream(f, role)
		if err != nil {
			return err
		}
		fmt.Println(c.String())
		return nil
	},
}

var cakeInspectCmd = &cobra.Command{
	Use:   "inspect <cake>",
	Short: "Decode a Cake's string form and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cake.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("type:      %s\n", c.Type())
		fmt.Printf("role:      %s\n", c.Role())
		fmt.Printf("immutable: %t\n", c.IsImmutable())
		if data, ok := c.Data(); ok {
			fmt.Printf("data:      %x\n", data)
		} else if hb, err := c.HashBytes(); err == nil {
			fmt.Printf("hash:      %x\n", hb)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{cakeFromBytesCmd, cakeFromFileCmd} {
		cmd.Flags().StringVar(&cakeRoleFlag, "role", "synapse", "role to tag the Cake with (synapse|neuron)")
	}
	cakeCmd.AddCommand(cakeFromBytesCmd, cakeFromFileCmd, cakeInspectCmd)
}
