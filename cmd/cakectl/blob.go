package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/blobstore"
	"github.com/1nfdev/hashstore-go/internal/cake"
	"github.com/1nfdev/hashstore-go/internal/config"
)

var blobCmd = &cobra.Command{
	Use:   "blob",
	Short: "Store and fetch content-addressed blobs",
}

func openBlobStore() (*blobstore.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("cakectl: create %s: %w", cfg.Storage.DataDir, err)
	}
	return blobstore.Open(filepath.Join(cfg.Storage.DataDir, "blobs.db"))
}

var blobPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Hash a file and store it, printing its address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		c, err := cake.FromBytes(data, cake.Synapse)
		if err != nil {
			return err
		}
		addr, err := cake.AddressFromCake(c)
		if err != nil {
			return fmt.Errorf("cakectl: %s hashes to an inline Cake, too small to address (use cake from-bytes instead)", args[0])
		}

		s, err := openBlobStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Put(addr, data); err != nil {
			return err
		}
		fmt.Println(addr.String())
		return nil
	},
}

var blobGetCmd = &cobra.Command{
	Use:   "get <address>",
	Short: "Fetch a stored blob's bytes to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cake.ParseAddress(args[0])
		if err != nil {
			return err
		}
		s, err := openBlobStore()
		if err != nil {
			return err
		}
		defer s.Close()

		data, err := s.Get(addr)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var blobStatCmd = &cobra.Command{
	Use:   "stat <address>",
	Short: "Print size and creation time for a stored blob",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cake.ParseAddress(args[0])
		if err != nil {
			return err
		}
		s, err := openBlobStore()
		if err != nil {
			return err
		}
		defer s.Close()

		info, err := s.Stat(addr)
		if err != nil {
			return err
		}
		fmt.Printf("size:       %d\n", info.Size)
		fmt.Printf("created_at: %s\n", info.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		return nil
	},
}

func init() {
	blobCmd.AddCommand(blobPutCmd, blobGetCmd, blobStatCmd)
}
