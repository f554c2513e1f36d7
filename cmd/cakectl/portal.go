package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/1nfdev/hashstore-go/internal/cake"
	"github.com/1nfdev/hashstore-go/internal/config"
	"github.com/1nfdev/hashstore-go/internal/portalstore"
	"github.com/1nfdev/hashstore-go/internal/resolver"
)

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Create, resolve, and transform portal Cakes",
}

func openPortalStore() (*portalstore.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("cakectl: create %s: %w", cfg.Storage.DataDir, err)
	}
	return portalstore.Open(filepath.Join(cfg.Storage.DataDir, "portals.db"))
}

var portalNewCmd = &cobra.Command{
	Use:   "new <target-cake>",
	Short: "Create a new portal pointing at target-cake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := cake.Parse(args[0])
		if err != nil {
			return err
		}
		portal, err := cake.NewPortal(nil, nil)
		if err != nil {
			return err
		}

		s, err := openPortalStore()
		if err != nil {
			return err
		}
		defer s.Close()

		author, _ := config.GetAuthor()
		if err := s.Transform(portal, target, author); err != nil {
			return err
		}
		fmt.Println(portal.String())
		return nil
	},
}

var portalResolveCmd = &cobra.Command{
	Use:   "resolve <portal-or-cake>",
	Short: "Resolve a Cake through portal indirection to its immutable value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cake.Parse(args[0])
		if err != nil {
			return err
		}
		s, err := openPortalStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := resolver.WithLookup(context.Background(), s)
		resolved, err := resolver.Resolve(ctx, c)
		if err != nil {
			return err
		}
		fmt.Println(resolved.String())
		return nil
	},
}

var portalTransformCmd = &cobra.Command{
	Use:   "transform <portal> <new-target>",
	Short: "Point an existing portal at a new target, recording history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		portal, err := cake.Parse(args[0])
		if err != nil {
			return err
		}
		target, err := cake.Parse(args[1])
		if err != nil {
			return err
		}

		s, err := openPortalStore()
		if err != nil {
			return err
		}
		defer s.Close()

		author, _ := config.GetAuthor()
		return s.Transform(portal, target, author)
	},
}

func init() {
	portalCmd.AddCommand(portalNewCmd, portalResolveCmd, portalTransformCmd)
}
