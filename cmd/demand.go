package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/badge"
	"github.com/troop32/mbcscope/pkg/demand"
)

// demandCmd represents the demand command
var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Aggregate Scout merit badge demand",
	Long: `Reads merit badge signup exports (CSV) and request lists (XLSX),
deduplicates scout/badge interest pairs, and saves a timestamped demand
analysis document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		universe, err := loadUniverse(cmd)
		if err != nil {
			return err
		}

		signupFile, _ := cmd.Flags().GetString("signup-file")
		requestFile, _ := cmd.Flags().GetString("request-file")
		if signupFile == "" && requestFile == "" {
			return fmt.Errorf("at least one of --signup-file or --request-file is required")
		}

		analysis, err := runDemand(universe, signupFile, requestFile)
		if err != nil {
			return err
		}

		path, err := store.SaveDemand(analysis, time.Now())
		if err != nil {
			return err
		}
		utils.Log.Infof("saved demand analysis to %s", path)
		fmt.Printf("Scouts: %d  Badges requested: %d  Total requests: %d\n",
			analysis.Summary.UniqueScouts, analysis.Summary.BadgesRequested, analysis.Summary.TotalRequests)
		return nil
	},
}

// runDemand aggregates the given demand inputs. Shared with the run
// command.
func runDemand(universe *badge.Universe, signupFile, requestFile string) (*demand.Analysis, error) {
	agg := demand.NewAggregator(universe)

	if signupFile != "" {
		f, err := os.Open(signupFile)
		if err != nil {
			return nil, fmt.Errorf("opening signup file: %w", err)
		}
		err = demand.ParseSignupCSV(f, agg)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	if requestFile != "" {
		if err := demand.ParseRequestListXLSX(requestFile, agg); err != nil {
			return nil, err
		}
	}

	analysis := agg.Result()
	for _, d := range analysis.Unmapped {
		utils.Log.Warn(d)
	}
	return analysis, nil
}

func init() {
	rootCmd.AddCommand(demandCmd)
	demandCmd.Flags().String("signup-file", "", "Merit badge signup export (CSV)")
	demandCmd.Flags().String("request-file", "", "Merit badge request list (XLSX)")
}
