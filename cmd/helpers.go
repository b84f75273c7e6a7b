package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/exclusion"
	"github.com/troop32/mbcscope/pkg/snapshot"
)

func openStore(cmd *cobra.Command) (*snapshot.Store, error) {
	dir, _ := cmd.Flags().GetString("data-dir")
	return snapshot.New(dir)
}

func loadUniverse(cmd *cobra.Command) (*badge.Universe, error) {
	path, _ := cmd.Flags().GetString("badge-file")
	return badge.LoadFile(path)
}

// loadExclusion reads the exclusion list when a path is given; an empty
// path yields an empty list so callers never branch.
func loadExclusion(path string) (*exclusion.List, error) {
	if path == "" {
		return exclusion.Empty(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exclusion list: %w", err)
	}
	defer f.Close()
	list, diags, err := exclusion.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing exclusion list: %w", err)
	}
	for _, d := range diags {
		utils.Log.Warn(d)
	}
	return list, nil
}
