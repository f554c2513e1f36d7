package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/saltedsha"
)

var sshaCmd = &cobra.Command{
	Use:   "ssha",
	Short: "Hash or check a secret with salted SHA-1",
}

var sshaHashCmd = &cobra.Command{
	Use:   "hash <secret>",
	Short: "Print the {SSHA} form of a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := saltedsha.FromSecret([]byte(args[0]))
		if err != nil {
			return err
		}
		fmt.Println(s.String())
		return nil
	},
}

var sshaCheckCmd = &cobra.Command{
	Use:   "check <ssha> <candidate>",
	Short: "Check whether candidate matches a stored {SSHA} digest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := saltedsha.Parse(args[0])
		if err != nil {
			return err
		}
		if s.CheckSecret([]byte(args[1])) {
			fmt.Println("match")
			return nil
		}
		return fmt.Errorf("no match")
	},
}

func init() {
	sshaCmd.AddCommand(sshaHashCmd, sshaCheckCmd)
}
