package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/coverage"
	"github.com/troop32/mbcscope/pkg/demand"
	"github.com/troop32/mbcscope/pkg/exclusion"
	"github.com/troop32/mbcscope/pkg/join"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute coverage gaps and recruitment priorities",
	Long: `Combines the joined counselor dataset with the newest demand analysis
and classifies every merit badge into a recruitment priority tier.
Excluded counselors are removed before classification so tier counts
match what the reports show.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		universe, err := loadUniverse(cmd)
		if err != nil {
			return err
		}

		joined, err := store.LoadJoined()
		if err != nil {
			return err
		}
		demandAnalysis, demandPath, err := store.LatestDemand()
		if err != nil {
			return err
		}
		if demandAnalysis == nil {
			utils.Log.Warn("no demand analysis found, classifying on coverage alone")
		} else {
			utils.Log.Infof("using demand analysis %s", demandPath)
		}

		exclusionFile, _ := cmd.Flags().GetString("exclusion-file")
		excl, err := loadExclusion(exclusionFile)
		if err != nil {
			return err
		}

		analysis := runAnalyze(universe, joined, demandAnalysis, excl)

		path, err := store.SavePriority(analysis, time.Now())
		if err != nil {
			return err
		}
		utils.Log.Infof("saved coverage analysis to %s", path)
		fmt.Printf("Critical: %d  High: %d  Medium: %d  Scouts impacted: %d\n",
			len(analysis.Critical), len(analysis.High), len(analysis.Medium), analysis.ScoutsImpacted)
		return nil
	},
}

// runAnalyze classifies coverage with exclusions already applied.
// Shared with the run command.
func runAnalyze(universe *badge.Universe, joined *join.Result, demandAnalysis *demand.Analysis, excl *exclusion.List) *coverage.Analysis {
	counselors := excl.FilterPersons(joined.TroopCounselors)

	var byBadge map[string]*demand.BadgeDemand
	if demandAnalysis != nil {
		byBadge = demandAnalysis.BadgeDemand
	}
	return coverage.Analyze(universe, counselors, byBadge)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("exclusion-file", "", "Exclusion list (one full name per line)")
}
